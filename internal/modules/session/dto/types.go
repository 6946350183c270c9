package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	characterdto "chronicle/internal/modules/character/dto"
	"chronicle/internal/platform/clock"
	"chronicle/internal/platform/locale"
)

// SessionInput is a full session record as handed to the repository.
type SessionInput struct {
	ID                 string
	Date               string
	Title              string
	RawNotes           string
	Story              string
	ImageURL           string
	CharactersInvolved []string
}

type SessionOutput struct {
	ID                 string
	Date               string
	Title              string
	RawNotes           string
	Story              string
	Translations       map[locale.Language]string
	ImageURL           string
	CharactersInvolved []string
}

type UpdateOutput struct {
	Session SessionOutput
	Updated bool
}

type SetTranslationInput struct {
	ID       string
	Language locale.Language
	Text     string
}

func (in SetTranslationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ID, validation.Required),
		validation.Field(&in.Language, validation.Required, validation.In(locale.English, locale.Russian)),
		validation.Field(&in.Text, validation.Required, validation.By(notBlank)),
	)
}

func notBlank(value any) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

type SetTranslationOutput struct {
	Result string
}

// ChronicleInput is a new entry written from raw notes.
type ChronicleInput struct {
	Date               string   `json:"date"`
	Title              string   `json:"title"`
	RawNotes           string   `json:"rawNotes"`
	CharactersInvolved []string `json:"charactersInvolved"`
	WithImage          bool     `json:"withImage"`
}

func (in ChronicleInput) Normalize() ChronicleInput {
	in.Date = strings.TrimSpace(in.Date)
	in.Title = strings.TrimSpace(in.Title)
	in.RawNotes = strings.TrimSpace(in.RawNotes)
	return in
}

func (in ChronicleInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Date, validation.Date(clock.DateLayout)),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.RawNotes, validation.Required),
	)
}

// ChronicleOutput reports the saved session and how generation went. The
// session is saved even when StoryStatus or ImageStatus is not ok.
type ChronicleOutput struct {
	Session     SessionOutput
	StoryStatus string
	ImageStatus string
	Reason      string
	Saved       bool
}

const (
	TranslationStored    = "stored"
	TranslationCached    = "cached"
	TranslationDegraded  = "degraded"
	TranslationSkipped   = "skipped"
	TranslationDiscarded = "discarded"
)

type TranslateInput struct {
	ID       string
	Language locale.Language
}

// TranslateOutput always carries text fit for display. A degraded result
// shows the original story and is not cached.
type TranslateOutput struct {
	Text   string
	Status string
	Reason string
}

type CastOutput struct {
	Known   []characterdto.CharacterOutput
	Unknown []string
}

type ViewInput struct {
	ID   string
	Mode string
}

type ViewOutput struct {
	Session    SessionOutput
	Text       string
	Language   locale.Language
	Translated bool
	// CanTranslate is true when no translation for Language is cached yet.
	CanTranslate bool
}

type ExportOutput struct {
	Files []string
}
