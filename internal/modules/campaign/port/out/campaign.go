package out

import (
	"context"

	"chronicle/internal/modules/campaign/domain"
	"chronicle/internal/platform/locale"
)

type CampaignStore interface {
	// LoadCampaigns reports found=false when no collection was ever saved.
	LoadCampaigns(ctx context.Context) ([]domain.Campaign, bool, error)
	SaveCampaigns(ctx context.Context, campaigns []domain.Campaign) error
}

type WorkspaceStore interface {
	LoadWorkspace(ctx context.Context) (domain.Workspace, error)
	SaveActiveCampaign(ctx context.Context, id string) error
	SaveLanguage(ctx context.Context, lang locale.Language) error
}

// PartitionStore manages the per-campaign session and character records.
type PartitionStore interface {
	MigrateLegacy(ctx context.Context, campaignID string) (domain.Migration, error)
	DropPartitions(ctx context.Context, campaignID string) error
}

// ScopeLoader is implemented by repositories whose contents follow the
// active campaign.
type ScopeLoader interface {
	LoadScope(ctx context.Context, campaignID string) error
}
