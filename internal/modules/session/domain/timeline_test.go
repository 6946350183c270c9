package domain_test

import (
	"testing"

	"chronicle/internal/modules/session/domain"
	"chronicle/internal/platform/locale"
)

func ids(list []domain.Session) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertKeepsNewestFirst(t *testing.T) {
	t.Parallel()

	var list []domain.Session
	list = domain.Insert(list, domain.Session{ID: "mid", Date: "2025-03-10"})
	list = domain.Insert(list, domain.Session{ID: "old", Date: "2025-01-02"})
	list = domain.Insert(list, domain.Session{ID: "new", Date: "2025-05-01"})
	list = domain.Insert(list, domain.Session{ID: "stamp", Date: "2025-04-01T20:00:00Z"})

	if got, want := ids(list), []string{"new", "stamp", "mid", "old"}; !equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestInsertTiesPutLatestInsertionFirst(t *testing.T) {
	t.Parallel()

	var list []domain.Session
	list = domain.Insert(list, domain.Session{ID: "a", Date: "2025-03-10"})
	list = domain.Insert(list, domain.Session{ID: "b", Date: "2025-03-10"})
	list = domain.Insert(list, domain.Session{ID: "c", Date: "2025-03-10"})

	if got, want := ids(list), []string{"c", "b", "a"}; !equal(got, want) {
		t.Fatalf("tie order = %v, want %v", got, want)
	}

	list, _, _ = domain.Replace(list, domain.Session{ID: "b", Date: "2025-03-10", Title: "edited"})
	if got, want := ids(list), []string{"c", "b", "a"}; !equal(got, want) {
		t.Fatalf("update reshuffled ties: %v", got)
	}
}

func TestUnparseableDatesSinkToEnd(t *testing.T) {
	t.Parallel()

	var list []domain.Session
	list = domain.Insert(list, domain.Session{ID: "junk", Date: "someday"})
	list = domain.Insert(list, domain.Session{ID: "real", Date: "2020-01-01"})
	if got, want := ids(list), []string{"real", "junk"}; !equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReplaceMovesSessionWhenDateChanges(t *testing.T) {
	t.Parallel()

	var list []domain.Session
	list = domain.Insert(list, domain.Session{ID: "a", Date: "2025-01-01"})
	list = domain.Insert(list, domain.Session{ID: "b", Date: "2025-02-01"})
	list, _, ok := domain.Replace(list, domain.Session{ID: "a", Date: "2025-03-01"})
	if !ok {
		t.Fatalf("replace did not match")
	}
	if got, want := ids(list), []string{"a", "b"}; !equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if _, _, ok := domain.Replace(list, domain.Session{ID: "zzz"}); ok {
		t.Fatalf("unknown id should not match")
	}
}

func TestReplaceTranslationRules(t *testing.T) {
	t.Parallel()

	base := domain.Session{ID: "s", Date: "2025-01-01", Story: "Once upon a time", Translations: map[locale.Language]string{locale.Russian: "Однажды"}}
	list := domain.Insert(nil, base)

	kept, stored, _ := domain.Replace(list, domain.Session{ID: "s", Date: "2025-01-01", Title: "renamed", Story: "Once upon a time"})
	if stored.Translations[locale.Russian] != "Однажды" || kept[0].Title != "renamed" {
		t.Fatalf("unchanged story should keep translations: %+v", stored)
	}

	cleared, stored, _ := domain.Replace(kept, domain.Session{ID: "s", Date: "2025-01-01", Story: "A new telling", Translations: map[locale.Language]string{locale.Russian: "smuggled"}})
	if stored.Translations != nil || cleared[0].Translations != nil {
		t.Fatalf("changed story must clear translations: %+v", stored)
	}

	forged, stored, _ := domain.Replace(cleared, domain.Session{ID: "s", Date: "2025-01-01", Story: "A new telling", Translations: map[locale.Language]string{locale.Russian: "forged"}})
	if stored.Translations != nil || forged[0].Translations != nil {
		t.Fatalf("incoming translations must be ignored: %+v", stored)
	}
}

func TestWithTranslationIsWriteOnce(t *testing.T) {
	t.Parallel()

	list := domain.Insert(nil, domain.Session{ID: "s", Date: "2025-01-01", Story: "Once upon a time..."})

	list, res := domain.WithTranslation(list, "s", locale.Russian, "Однажды...", nil)
	if res != domain.TranslationStored {
		t.Fatalf("first write = %s", res)
	}
	again, res := domain.WithTranslation(list, "s", locale.Russian, "other", nil)
	if res != domain.TranslationUnchanged || again[0].Translations[locale.Russian] != "Однажды..." {
		t.Fatalf("second write = %s, value %q", res, again[0].Translations[locale.Russian])
	}
	if _, res := domain.WithTranslation(list, "missing", locale.Russian, "x", nil); res != domain.TranslationMissing {
		t.Fatalf("missing = %s", res)
	}
	old := "an earlier story"
	if _, res := domain.WithTranslation(list, "s", locale.English, "x", &old); res != domain.TranslationStale {
		t.Fatalf("stale = %s", res)
	}
}

func TestWithTranslationAcceptsUntranslatedEcho(t *testing.T) {
	t.Parallel()

	const story = "Once upon a time..."
	list := domain.Insert(nil, domain.Session{ID: "s", Date: "2025-01-01", Story: story})
	list, res := domain.WithTranslation(list, "s", locale.Russian, story, nil)
	if res != domain.TranslationStored {
		t.Fatalf("result = %s", res)
	}
	if list[0].Story != story || list[0].Translations[locale.Russian] != story {
		t.Fatalf("record corrupted: %+v", list[0])
	}
}

func TestBlankTranslationIsNeverCached(t *testing.T) {
	t.Parallel()

	list := domain.Insert(nil, domain.Session{ID: "s", Date: "2025-01-01", Story: "Once upon a time..."})
	same, res := domain.WithTranslation(list, "s", locale.Russian, "  ", nil)
	if res != domain.TranslationEmpty || len(same[0].Translations) != 0 {
		t.Fatalf("blank write = %s, translations %+v", res, same[0].Translations)
	}

	list[0].Translations = map[locale.Language]string{locale.Russian: ""}
	if _, ok := list[0].Translation(locale.Russian); ok {
		t.Fatalf("blank entry must not count as a translation")
	}
	filled, res := domain.WithTranslation(list, "s", locale.Russian, "Однажды...", nil)
	if res != domain.TranslationStored || filled[0].Translations[locale.Russian] != "Однажды..." {
		t.Fatalf("blank entry should be fillable: %s %+v", res, filled[0].Translations)
	}
}

func TestWithTranslationDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	list := domain.Insert(nil, domain.Session{ID: "s", Date: "2025-01-01", Story: "x"})
	_, _ = domain.WithTranslation(list, "s", locale.Russian, "y", nil)
	if list[0].Translations != nil {
		t.Fatalf("input list was mutated")
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	s := domain.Session{Story: "Once", Translations: map[locale.Language]string{locale.Russian: "Однажды"}}
	cases := []struct {
		lang       locale.Language
		mode       domain.ViewMode
		want       string
		translated bool
	}{
		{locale.Russian, domain.ViewDefault, "Однажды", true},
		{locale.Russian, domain.ViewOriginal, "Once", false},
		{locale.Russian, domain.ViewTranslated, "Однажды", true},
		{locale.English, domain.ViewDefault, "Once", false},
		{locale.English, domain.ViewTranslated, "Once", false},
	}
	for _, tc := range cases {
		got, translated := domain.Display(s, tc.lang, tc.mode)
		if got != tc.want || translated != tc.translated {
			t.Fatalf("Display(%s, %s) = %q/%v, want %q/%v", tc.lang, tc.mode, got, translated, tc.want, tc.translated)
		}
	}
	if _, ok := domain.ParseViewMode("sideways"); ok {
		t.Fatalf("unknown mode accepted")
	}
}
