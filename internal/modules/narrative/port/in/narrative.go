package in

import (
	"context"

	"chronicle/internal/modules/narrative/dto"
)

// Usecase never returns errors; failures come back as degraded or failed
// outputs.
type Usecase interface {
	Narrate(ctx context.Context, input dto.NarrateInput) dto.TextOutput
	Translate(ctx context.Context, input dto.TranslateInput) dto.TextOutput
	Portrait(ctx context.Context, input dto.PortraitInput) dto.ImageOutput
	Storyboard(ctx context.Context, input dto.StoryboardInput) dto.ImageOutput
	Scene(ctx context.Context, input dto.SceneInput) dto.ImageOutput
}
