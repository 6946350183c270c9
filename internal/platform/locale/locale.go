package locale

import (
	"strings"

	apperrors "chronicle/internal/platform/errors"
)

// Language is the interface language and the target of story translations.
type Language string

const (
	English Language = "en"
	Russian Language = "ru"
)

const Default = English

func (l Language) Valid() bool {
	return l == English || l == Russian
}

// Other returns the language a story would be translated into from l.
func (l Language) Other() Language {
	if l == Russian {
		return English
	}
	return Russian
}

// Name is the human readable language name used in prompts.
func (l Language) Name() string {
	switch l {
	case Russian:
		return "Russian"
	default:
		return "English"
	}
}

func Parse(raw string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(raw)))
	if !l.Valid() {
		return "", apperrors.Invalid("language", "must be one of en, ru")
	}
	return l, nil
}

// OrDefault maps anything unrecognised to the default language.
func OrDefault(raw string) Language {
	l, err := Parse(raw)
	if err != nil {
		return Default
	}
	return l
}
