package locale_test

import (
	"errors"
	"testing"

	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/locale"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := map[string]locale.Language{
		"en":   locale.English,
		" RU ": locale.Russian,
	}
	for raw, want := range cases {
		got, err := locale.Parse(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q = %q, want %q", raw, got, want)
		}
	}
	if _, err := locale.Parse("de"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error for de, got %v", err)
	}
}

func TestOrDefault(t *testing.T) {
	t.Parallel()

	if got := locale.OrDefault("klingon"); got != locale.English {
		t.Fatalf("fallback = %q", got)
	}
	if got := locale.OrDefault("ru"); got != locale.Russian {
		t.Fatalf("ru = %q", got)
	}
	if locale.Russian.Other() != locale.English || locale.English.Other() != locale.Russian {
		t.Fatalf("Other is not symmetric")
	}
}
