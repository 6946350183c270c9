package domain

import "chronicle/internal/platform/locale"

// ViewMode is the per-session reading preference.
type ViewMode string

const (
	ViewDefault    ViewMode = "default"
	ViewOriginal   ViewMode = "original"
	ViewTranslated ViewMode = "translated"
)

func ParseViewMode(raw string) (ViewMode, bool) {
	switch ViewMode(raw) {
	case "", ViewDefault:
		return ViewDefault, true
	case ViewOriginal, ViewTranslated:
		return ViewMode(raw), true
	default:
		return "", false
	}
}

// Display picks the text to show for s in lang. By default a cached
// translation wins; forcing the translation falls back to the story when none
// exists yet.
func Display(s Session, lang locale.Language, mode ViewMode) (string, bool) {
	if mode == ViewOriginal {
		return s.Story, false
	}
	if text, ok := s.Translation(lang); ok {
		return text, true
	}
	return s.Story, false
}
