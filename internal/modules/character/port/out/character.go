package out

import (
	"context"

	"chronicle/internal/modules/character/domain"
)

type CharacterStore interface {
	LoadCharacters(ctx context.Context, campaignID string) ([]domain.Character, error)
	SaveCharacters(ctx context.Context, campaignID string, characters []domain.Character) error
}
