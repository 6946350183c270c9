package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	narrativedto "chronicle/internal/modules/narrative/dto"
)

// CharacterInput is a full record. Update replaces every field, so callers
// pass back the values they do not intend to change.
type CharacterInput struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Race            string `json:"race"`
	Class           string `json:"class"`
	Description     string `json:"description"`
	BackgroundStory string `json:"backgroundStory"`
	ImageURL        string `json:"imageUrl"`
	VisualStoryURL  string `json:"visualStoryUrl"`
	Notes           string `json:"notes"`
}

func (in CharacterInput) Normalize() CharacterInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Race = strings.TrimSpace(in.Race)
	in.Class = strings.TrimSpace(in.Class)
	return in
}

func (in CharacterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 120)),
	)
}

type CharacterOutput struct {
	ID              string
	Name            string
	Race            string
	Class           string
	Description     string
	BackgroundStory string
	ImageURL        string
	VisualStoryURL  string
	Notes           string
}

// Figure is the part of the character that image and story prompts describe.
func (o CharacterOutput) Figure() narrativedto.Figure {
	return narrativedto.Figure{
		Name:            o.Name,
		Race:            o.Race,
		Class:           o.Class,
		Description:     o.Description,
		BackgroundStory: o.BackgroundStory,
	}
}

type UpdateOutput struct {
	Character CharacterOutput
	Updated   bool
}

type ResolveOutput struct {
	Known   []CharacterOutput
	Unknown []string
}

type PortraitInput struct {
	ID           string
	Instructions string
}

// ImageOutput reports a generation attempt. Saved is true when the new image
// was written back to the character.
type ImageOutput struct {
	Character CharacterOutput
	Status    string
	Reason    string
	Saved     bool
}
