package out

import (
	"context"

	"chronicle/internal/modules/narrative/domain"
	narrativeout "chronicle/internal/modules/narrative/port/out"
)

// UnconfiguredModel stands in when no API key is set, so every generation
// degrades to its fallback instead of blocking the app.
type UnconfiguredModel struct{}

func NewUnconfiguredModel() narrativeout.Model {
	return UnconfiguredModel{}
}

func (UnconfiguredModel) GenerateText(context.Context, string) (string, error) {
	return "", domain.ErrUnavailable
}

func (UnconfiguredModel) GenerateImage(context.Context, string) (domain.Image, error) {
	return domain.Image{}, domain.ErrUnavailable
}
