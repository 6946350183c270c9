package domain

import (
	"maps"
	"slices"
	"strings"

	"chronicle/internal/platform/locale"
)

// SortByDate orders sessions newest first. The sort is stable, so sessions
// sharing a date keep their relative order. Unparseable dates sink to the end.
func SortByDate(list []Session) {
	slices.SortStableFunc(list, func(a, b Session) int {
		ta, okA := ParseDate(a.Date)
		tb, okB := ParseDate(b.Date)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

func Find(list []Session, id string) (Session, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// Insert puts s in front of list and re-sorts, so among sessions on the same
// date the newest insertion comes first.
func Insert(list []Session, s Session) []Session {
	out := make([]Session, 0, len(list)+1)
	out = append(out, Normalize(s))
	out = append(out, list...)
	SortByDate(out)
	return out
}

// Replace swaps in next for the session with the same id and re-sorts.
// Translations are carried over from the stored record only while the story
// is unchanged; translations on next itself are ignored.
func Replace(list []Session, next Session) ([]Session, Session, bool) {
	idx := slices.IndexFunc(list, func(s Session) bool { return s.ID == next.ID })
	if idx < 0 {
		return list, Session{}, false
	}
	prior := list[idx]
	next.Translations = nil
	if next.Story == prior.Story {
		next.Translations = prior.Translations
	}
	next = Normalize(next)

	out := slices.Clone(list)
	out[idx] = next
	SortByDate(out)
	return out, next, true
}

func Remove(list []Session, id string) ([]Session, bool) {
	idx := slices.IndexFunc(list, func(s Session) bool { return s.ID == id })
	if idx < 0 {
		return list, false
	}
	return slices.Delete(slices.Clone(list), idx, idx+1), true
}

// WithTranslation records text for lang on the session with id. An existing
// translation for lang is never overwritten; presence follows
// Session.Translation, so a blank stored entry counts as absent. Blank text is
// never stored. When sourceStory is non-nil the write only happens if the
// session still has that story.
func WithTranslation(list []Session, id string, lang locale.Language, text string, sourceStory *string) ([]Session, TranslationResult) {
	if strings.TrimSpace(text) == "" {
		return list, TranslationEmpty
	}
	idx := slices.IndexFunc(list, func(s Session) bool { return s.ID == id })
	if idx < 0 {
		return list, TranslationMissing
	}
	current := list[idx]
	if sourceStory != nil && current.Story != *sourceStory {
		return list, TranslationStale
	}
	if _, exists := current.Translation(lang); exists {
		return list, TranslationUnchanged
	}
	translations := maps.Clone(current.Translations)
	if translations == nil {
		translations = map[locale.Language]string{}
	}
	translations[lang] = text
	current.Translations = translations

	out := slices.Clone(list)
	out[idx] = current
	return out, TranslationStored
}
