package out

import (
	"context"

	"chronicle/internal/modules/character/domain"
	characterout "chronicle/internal/modules/character/port/out"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/kv"
)

type KVCharacterStore struct {
	store kv.Store
}

func NewKVCharacterStore(store kv.Store) characterout.CharacterStore {
	return &KVCharacterStore{store: store}
}

func (s *KVCharacterStore) LoadCharacters(ctx context.Context, campaignID string) ([]domain.Character, error) {
	characters := []domain.Character{}
	if _, err := kv.GetJSON(ctx, s.store, kv.CharactersKey(campaignID), &characters); err != nil {
		return nil, apperrors.Storage("load characters", err)
	}
	if characters == nil {
		characters = []domain.Character{}
	}
	return characters, nil
}

func (s *KVCharacterStore) SaveCharacters(ctx context.Context, campaignID string, characters []domain.Character) error {
	if characters == nil {
		characters = []domain.Character{}
	}
	if err := kv.SetJSON(ctx, s.store, kv.CharactersKey(campaignID), characters); err != nil {
		return apperrors.Storage("save characters", err)
	}
	return nil
}
