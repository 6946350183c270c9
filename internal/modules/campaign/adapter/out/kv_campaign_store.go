package out

import (
	"context"

	"chronicle/internal/modules/campaign/domain"
	campaignout "chronicle/internal/modules/campaign/port/out"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/kv"
)

type KVCampaignStore struct {
	store kv.Store
}

func NewKVCampaignStore(store kv.Store) campaignout.CampaignStore {
	return &KVCampaignStore{store: store}
}

func (s *KVCampaignStore) LoadCampaigns(ctx context.Context) ([]domain.Campaign, bool, error) {
	campaigns := []domain.Campaign{}
	found, err := kv.GetJSON(ctx, s.store, kv.KeyCampaigns, &campaigns)
	if err != nil {
		return nil, false, apperrors.Storage("load campaigns", err)
	}
	return campaigns, found, nil
}

func (s *KVCampaignStore) SaveCampaigns(ctx context.Context, campaigns []domain.Campaign) error {
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	if err := kv.SetJSON(ctx, s.store, kv.KeyCampaigns, campaigns); err != nil {
		return apperrors.Storage("save campaigns", err)
	}
	return nil
}
