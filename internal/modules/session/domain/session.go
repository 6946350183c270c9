package domain

import (
	"maps"
	"slices"
	"strings"
	"time"

	"chronicle/internal/platform/clock"
	"chronicle/internal/platform/locale"
)

type Session struct {
	ID                 string                     `json:"id"`
	Date               string                     `json:"date"`
	Title              string                     `json:"title"`
	RawNotes           string                     `json:"rawNotes"`
	Story              string                     `json:"story"`
	Translations       map[locale.Language]string `json:"translations,omitempty"`
	ImageURL           string                     `json:"imageUrl,omitempty"`
	CharactersInvolved []string                   `json:"charactersInvolved"`
}

// Normalize gives a session the canonical shape it has after a store round
// trip: a non-nil cast list and no empty translation map.
func Normalize(s Session) Session {
	if s.CharactersInvolved == nil {
		s.CharactersInvolved = []string{}
	} else {
		s.CharactersInvolved = slices.Clone(s.CharactersInvolved)
	}
	if len(s.Translations) == 0 {
		s.Translations = nil
	} else {
		s.Translations = maps.Clone(s.Translations)
	}
	return s
}

// ParseDate accepts plain dates and full timestamps.
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range []string{clock.DateLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Translation reports the cached text for lang. Blank entries do not count.
func (s Session) Translation(lang locale.Language) (string, bool) {
	text, ok := s.Translations[lang]
	return text, ok && strings.TrimSpace(text) != ""
}

// TranslationResult reports what SetTranslation did.
type TranslationResult string

const (
	TranslationStored    TranslationResult = "stored"
	TranslationUnchanged TranslationResult = "unchanged"
	TranslationMissing   TranslationResult = "missing"
	TranslationStale     TranslationResult = "stale"
	TranslationEmpty     TranslationResult = "empty"
)
