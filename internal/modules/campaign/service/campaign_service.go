package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"chronicle/internal/modules/campaign/domain"
	campaignout "chronicle/internal/modules/campaign/port/out"
	"chronicle/internal/platform/clock"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/id"
	"chronicle/internal/platform/locale"
	"chronicle/internal/platform/logging"
)

var errNotLoaded = fmt.Errorf("campaigns not loaded: %w", apperrors.ErrPrecondition)

// CampaignService owns the campaign collection and the workspace selection.
// Every mutation is written through to the store before memory is updated.
type CampaignService struct {
	clock      clock.Clock
	idGen      id.Generator
	campaigns  campaignout.CampaignStore
	workspace  campaignout.WorkspaceStore
	partitions campaignout.PartitionStore
	log        *zap.Logger

	mu     sync.Mutex
	loaded bool
	list   []domain.Campaign
	ws     domain.Workspace
}

func NewCampaignService(
	clock clock.Clock,
	idGen id.Generator,
	campaigns campaignout.CampaignStore,
	workspace campaignout.WorkspaceStore,
	partitions campaignout.PartitionStore,
	logger *zap.Logger,
) *CampaignService {
	return &CampaignService{
		clock:      clock,
		idGen:      idGen,
		campaigns:  campaigns,
		workspace:  workspace,
		partitions: partitions,
		log:        logging.OrNop(logger),
	}
}

// Bootstrap loads the collection, creating the default campaign and migrating
// legacy records on first run. A stored active id that no longer names a
// campaign is corrected to the first one.
func (s *CampaignService) Bootstrap(ctx context.Context) (domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, found, err := s.campaigns.LoadCampaigns(ctx)
	if err != nil {
		return domain.Workspace{}, err
	}
	ws, err := s.workspace.LoadWorkspace(ctx)
	if err != nil {
		return domain.Workspace{}, err
	}

	switch {
	case !found:
		def := domain.NewDefault(s.clock.Now())
		list = []domain.Campaign{def}
		// The collection is saved last: its presence marks migration as done,
		// so a failed copy is retried on the next start.
		migration, err := s.partitions.MigrateLegacy(ctx, def.ID)
		if err != nil {
			return domain.Workspace{}, err
		}
		if err := s.campaigns.SaveCampaigns(ctx, list); err != nil {
			return domain.Workspace{}, err
		}
		s.log.Info("campaigns initialised",
			zap.String("campaign_id", def.ID),
			zap.Bool("migrated_sessions", migration.Sessions),
			zap.Bool("migrated_characters", migration.Characters),
		)
		ws.ActiveCampaignID = def.ID
	case len(list) == 0:
		fallback := domain.NewFallback(s.idGen.New(), s.clock.Now())
		list = []domain.Campaign{fallback}
		if err := s.campaigns.SaveCampaigns(ctx, list); err != nil {
			return domain.Workspace{}, err
		}
		s.log.Warn("empty campaign collection replaced", zap.String("campaign_id", fallback.ID))
	}

	resolved := domain.ResolveActive(list, ws.ActiveCampaignID)
	if resolved != ws.ActiveCampaignID || !found {
		if err := s.workspace.SaveActiveCampaign(ctx, resolved); err != nil {
			return domain.Workspace{}, err
		}
		if found {
			s.log.Info("active campaign corrected", zap.String("from", ws.ActiveCampaignID), zap.String("to", resolved))
		}
	}
	ws.ActiveCampaignID = resolved

	s.list = list
	s.ws = ws
	s.loaded = true
	return ws, nil
}

func (s *CampaignService) List(_ context.Context) ([]domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, errNotLoaded
	}
	return append([]domain.Campaign(nil), s.list...), nil
}

func (s *CampaignService) Get(_ context.Context, campaignID string) (domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.Campaign{}, errNotLoaded
	}
	idx := domain.Index(s.list, campaignID)
	if idx < 0 {
		return domain.Campaign{}, fmt.Errorf("campaign %s: %w", campaignID, apperrors.ErrNotFound)
	}
	return s.list[idx], nil
}

func (s *CampaignService) Workspace(_ context.Context) (domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.Workspace{}, errNotLoaded
	}
	return s.ws, nil
}

// Create appends a campaign and makes it active. name must already be
// validated.
func (s *CampaignService) Create(ctx context.Context, name, description string, settings *domain.Settings) (domain.Campaign, error) {
	if name == "" {
		return domain.Campaign{}, apperrors.Invalid("name", "cannot be blank")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.Campaign{}, errNotLoaded
	}

	c := domain.Campaign{
		ID:          s.idGen.New(),
		Name:        name,
		Description: description,
		CreatedAt:   s.clock.Now(),
		Settings:    settings,
	}
	next := domain.Append(s.list, c)
	if err := s.campaigns.SaveCampaigns(ctx, next); err != nil {
		return domain.Campaign{}, err
	}
	s.list = next
	if err := s.activate(ctx, c.ID); err != nil {
		return domain.Campaign{}, err
	}
	s.log.Info("campaign created", zap.String("campaign_id", c.ID))
	return c, nil
}

// Update merges patch into the campaign; updated is false for unknown ids.
func (s *CampaignService) Update(ctx context.Context, campaignID string, patch domain.Patch) (domain.Campaign, bool, error) {
	if patch.Name != nil && *patch.Name == "" {
		return domain.Campaign{}, false, apperrors.Invalid("name", "cannot be blank")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.Campaign{}, false, errNotLoaded
	}

	next, merged, ok := domain.Merge(s.list, campaignID, patch)
	if !ok {
		return domain.Campaign{}, false, nil
	}
	if err := s.campaigns.SaveCampaigns(ctx, next); err != nil {
		return domain.Campaign{}, false, err
	}
	s.list = next
	return merged, true, nil
}

// DeleteResult describes what a delete changed.
type DeleteResult struct {
	Deleted       bool
	ActiveChanged bool
	Replacement   *domain.Campaign
}

// Delete removes the campaign and its partitions. The collection never ends
// up empty: deleting the last campaign leaves a fresh fallback in its place.
func (s *CampaignService) Delete(ctx context.Context, campaignID string) (DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return DeleteResult{}, errNotLoaded
	}

	next, ok := domain.Remove(s.list, campaignID)
	if !ok {
		return DeleteResult{}, nil
	}
	result := DeleteResult{Deleted: true}
	if len(next) == 0 {
		fallback := domain.NewFallback(s.idGen.New(), s.clock.Now())
		next = []domain.Campaign{fallback}
		result.Replacement = &fallback
	}
	if err := s.campaigns.SaveCampaigns(ctx, next); err != nil {
		return DeleteResult{}, err
	}
	s.list = next
	if err := s.partitions.DropPartitions(ctx, campaignID); err != nil {
		return DeleteResult{}, err
	}

	if active := domain.ResolveActive(next, s.ws.ActiveCampaignID); active != s.ws.ActiveCampaignID {
		if err := s.activate(ctx, active); err != nil {
			return DeleteResult{}, err
		}
		result.ActiveChanged = true
	}
	s.log.Info("campaign deleted",
		zap.String("campaign_id", campaignID),
		zap.Bool("active_changed", result.ActiveChanged),
		zap.Bool("replaced", result.Replacement != nil),
	)
	return result, nil
}

// SwitchActive selects another campaign. Unknown ids are rejected so the
// pointer never dangles.
func (s *CampaignService) SwitchActive(ctx context.Context, campaignID string) (domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.Workspace{}, errNotLoaded
	}
	if domain.Index(s.list, campaignID) < 0 {
		return domain.Workspace{}, fmt.Errorf("campaign %s: %w", campaignID, apperrors.ErrNotFound)
	}
	if err := s.activate(ctx, campaignID); err != nil {
		return domain.Workspace{}, err
	}
	s.log.Info("active campaign switched", zap.String("campaign_id", campaignID))
	return s.ws, nil
}

func (s *CampaignService) SetLanguage(ctx context.Context, lang locale.Language) (domain.Workspace, error) {
	if !lang.Valid() {
		return domain.Workspace{}, apperrors.Invalid("language", "must be one of en, ru")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return domain.Workspace{}, errNotLoaded
	}
	if err := s.workspace.SaveLanguage(ctx, lang); err != nil {
		return domain.Workspace{}, err
	}
	s.ws.Language = lang
	return s.ws, nil
}

func (s *CampaignService) activate(ctx context.Context, campaignID string) error {
	if err := s.workspace.SaveActiveCampaign(ctx, campaignID); err != nil {
		return err
	}
	s.ws.ActiveCampaignID = campaignID
	return nil
}
