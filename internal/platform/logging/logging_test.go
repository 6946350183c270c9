package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"chronicle/internal/platform/logging"
)

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "chronicle.log")
	logger, err := logging.New(logging.Config{Level: "debug", OutputPath: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("session created", zap.String("session_id", "s-1"))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"session_id":"s-1"`) {
		t.Fatalf("log line missing field: %s", raw)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	if _, err := logging.New(logging.Config{Level: "chatty"}); err == nil {
		t.Fatalf("expected error for bad level")
	}
}

func TestOrNop(t *testing.T) {
	t.Parallel()

	if logging.OrNop(nil) == nil {
		t.Fatalf("expected a logger")
	}
}
