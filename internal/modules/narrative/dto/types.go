package dto

import "chronicle/internal/platform/locale"

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFailed   = "failed"
)

type Style struct {
	ImageStyle     string
	AIInstructions string
}

type Figure struct {
	Name            string
	Race            string
	Class           string
	Description     string
	BackgroundStory string
}

type NarrateInput struct {
	Notes    string
	Style    Style
	Language locale.Language
}

type TranslateInput struct {
	Text   string
	Target locale.Language
}

type PortraitInput struct {
	Figure       Figure
	Style        Style
	Instructions string
}

type StoryboardInput struct {
	Figure Figure
	Style  Style
}

type SceneInput struct {
	Story   string
	Figures []Figure
	Style   Style
}

// TextOutput always carries displayable text, the fallback when degraded.
type TextOutput struct {
	Text   string
	Status string
	Reason string
}

func (o TextOutput) OK() bool { return o.Status == StatusOK }

// ImageOutput carries a data URL handle, empty unless Status is ok.
type ImageOutput struct {
	Handle string
	Status string
	Reason string
}

func (o ImageOutput) OK() bool { return o.Status == StatusOK && o.Handle != "" }
