package out

import (
	"context"

	"chronicle/internal/modules/narrative/domain"
)

// Model is a single-attempt generative backend. Implementations wrap quota
// errors with domain.ErrRateLimited.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (domain.Image, error)
}
