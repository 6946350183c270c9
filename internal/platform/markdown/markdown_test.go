package markdown_test

import (
	"strings"
	"testing"

	"chronicle/internal/platform/markdown"
)

type sessionMeta struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

func TestRenderThenSplit(t *testing.T) {
	t.Parallel()

	doc, err := markdown.RenderFrontmatter(sessionMeta{Title: "The First Tale", Date: "2025-01-02"}, "Once upon a time.\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(doc)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["title"] != "The First Tale" {
		t.Fatalf("title = %v", meta["title"])
	}
	if strings.TrimSpace(body) != "Once upon a time." {
		t.Fatalf("body = %q", body)
	}
}

func TestSplitWithoutFrontmatter(t *testing.T) {
	t.Parallel()

	meta, body, err := markdown.SplitFrontmatter("plain text")
	if err != nil || len(meta) != 0 || body != "plain text" {
		t.Fatalf("meta=%v body=%q err=%v", meta, body, err)
	}
	if _, _, err := markdown.SplitFrontmatter("---\ntitle: x\n"); err == nil {
		t.Fatalf("expected error for unterminated frontmatter")
	}
}

func TestReplaceManagedBlock(t *testing.T) {
	t.Parallel()

	first := markdown.ReplaceManagedBlock("My notes\n", markdown.RosterStart, markdown.RosterEnd, "- Ysolde")
	if !strings.HasPrefix(first, "My notes\n\n"+markdown.RosterStart) {
		t.Fatalf("block not appended: %q", first)
	}
	second := markdown.ReplaceManagedBlock(first, markdown.RosterStart, markdown.RosterEnd, "- Brann")
	if strings.Contains(second, "Ysolde") || !strings.Contains(second, "- Brann") {
		t.Fatalf("block not replaced: %q", second)
	}
	if !strings.HasPrefix(second, "My notes") {
		t.Fatalf("surrounding text lost: %q", second)
	}
	if got := markdown.ReplaceManagedBlock("  ", "<a>", "</a>", "x"); got != "<a>\nx\n</a>\n" {
		t.Fatalf("empty body = %q", got)
	}
}
