package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"chronicle/internal/platform/locale"
)

const maxNameLength = 120

type CreateInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	ImageStyle     string `json:"imageStyle"`
	AIInstructions string `json:"aiInstructions"`
}

func (in CreateInput) Normalize() CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, maxNameLength)),
	)
}

// UpdateInput carries only the fields to change. Settings are replaced as a
// pair when either is set.
type UpdateInput struct {
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	ImageStyle     *string `json:"imageStyle"`
	AIInstructions *string `json:"aiInstructions"`
}

func (in UpdateInput) Validate() error {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	return validation.ValidateStruct(&in,
		validation.Field(&in.ID, validation.Required),
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, maxNameLength)),
	)
}

type CampaignOutput struct {
	ID             string
	Name           string
	Description    string
	CreatedAt      time.Time
	ImageStyle     string
	AIInstructions string
	Active         bool
}

type UpdateOutput struct {
	Campaign CampaignOutput
	Updated  bool
}

type DeleteOutput struct {
	Deleted          bool
	ActiveCampaignID string
	// Replacement is set when the last campaign was deleted and a fresh one
	// took its place.
	Replacement *CampaignOutput
}

type WorkspaceOutput struct {
	ActiveCampaignID string
	Language         locale.Language
}
