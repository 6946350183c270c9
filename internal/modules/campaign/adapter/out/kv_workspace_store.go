package out

import (
	"context"
	"encoding/json"

	"chronicle/internal/modules/campaign/domain"
	campaignout "chronicle/internal/modules/campaign/port/out"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/kv"
	"chronicle/internal/platform/locale"
)

type KVWorkspaceStore struct {
	store kv.Store
}

func NewKVWorkspaceStore(store kv.Store) campaignout.WorkspaceStore {
	return &KVWorkspaceStore{store: store}
}

// LoadWorkspace returns zero values for anything never saved. A value that
// does not decode is treated as unset rather than failing startup.
func (s *KVWorkspaceStore) LoadWorkspace(ctx context.Context) (domain.Workspace, error) {
	active, err := s.readString(ctx, kv.KeyActiveCampaign)
	if err != nil {
		return domain.Workspace{}, err
	}
	lang, err := s.readString(ctx, kv.KeyLanguage)
	if err != nil {
		return domain.Workspace{}, err
	}
	return domain.Workspace{ActiveCampaignID: active, Language: locale.OrDefault(lang)}, nil
}

func (s *KVWorkspaceStore) readString(ctx context.Context, key string) (string, error) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		return "", apperrors.Storage("load "+key, err)
	}
	if !found {
		return "", nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", nil
	}
	return value, nil
}

func (s *KVWorkspaceStore) SaveActiveCampaign(ctx context.Context, id string) error {
	if err := kv.SetJSON(ctx, s.store, kv.KeyActiveCampaign, id); err != nil {
		return apperrors.Storage("save active campaign", err)
	}
	return nil
}

func (s *KVWorkspaceStore) SaveLanguage(ctx context.Context, lang locale.Language) error {
	if err := kv.SetJSON(ctx, s.store, kv.KeyLanguage, lang); err != nil {
		return apperrors.Storage("save language", err)
	}
	return nil
}
