package slug_test

import (
	"testing"

	"chronicle/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"The First Tale":        "the-first-tale",
		"  Siege of Kell!  ":    "siege-of-kell",
		"Битва у моста":         "битва-у-моста",
		"???":                   "untitled",
		"Chapter 2: Ash & Iron": "chapter-2-ash-iron",
	}
	for input, want := range cases {
		if got := slug.Make(input); got != want {
			t.Fatalf("Make(%q) = %q, want %q", input, got, want)
		}
	}
}
