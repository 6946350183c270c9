package in

import (
	"context"

	"chronicle/internal/modules/character/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.CharacterOutput, error)
	Get(ctx context.Context, id string) (dto.CharacterOutput, error)
	Create(ctx context.Context, input dto.CharacterInput) (dto.CharacterOutput, error)
	Update(ctx context.Context, input dto.CharacterInput) (dto.UpdateOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
	Resolve(ctx context.Context, ids []string) (dto.ResolveOutput, error)
	Portrait(ctx context.Context, input dto.PortraitInput) (dto.ImageOutput, error)
	Storyboard(ctx context.Context, id string) (dto.ImageOutput, error)
}
