package kv

import "context"

// Store is a flat string-keyed record store. Values are opaque bytes; callers
// encode them as JSON.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

const (
	KeyCampaigns        = "campaigns"
	KeyActiveCampaign   = "activeCampaignId"
	KeyLanguage         = "language"
	KeyLegacySessions   = "sessions"
	KeyLegacyCharacters = "characters"
)

func SessionsKey(campaignID string) string {
	return "sessions:" + campaignID
}

func CharactersKey(campaignID string) string {
	return "characters:" + campaignID
}
