package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"chronicle/internal/modules/campaign/domain"
	campaigndto "chronicle/internal/modules/campaign/dto"
	campaignin "chronicle/internal/modules/campaign/port/in"
	campaignout "chronicle/internal/modules/campaign/port/out"
	"chronicle/internal/modules/campaign/service"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/locale"
)

// Interactor serializes every change of the active campaign together with
// the scope reload, so the loaders always end up on the campaign the
// workspace points at.
type Interactor struct {
	svc     *service.CampaignService
	loaders []campaignout.ScopeLoader

	scopeMu sync.Mutex
}

// NewInteractor wires the campaign service to the repositories that must
// reload whenever the active campaign changes.
func NewInteractor(svc *service.CampaignService, loaders ...campaignout.ScopeLoader) campaignin.Usecase {
	return &Interactor{svc: svc, loaders: loaders}
}

func (i *Interactor) Bootstrap(ctx context.Context) (campaigndto.WorkspaceOutput, error) {
	i.scopeMu.Lock()
	defer i.scopeMu.Unlock()
	ws, err := i.svc.Bootstrap(ctx)
	if err != nil {
		return campaigndto.WorkspaceOutput{}, err
	}
	if err := i.reload(ctx, ws.ActiveCampaignID); err != nil {
		return campaigndto.WorkspaceOutput{}, err
	}
	return toWorkspaceOutput(ws), nil
}

func (i *Interactor) List(ctx context.Context) ([]campaigndto.CampaignOutput, error) {
	list, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	ws, err := i.svc.Workspace(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]campaigndto.CampaignOutput, 0, len(list))
	for _, c := range list {
		out = append(out, toOutput(c, ws.ActiveCampaignID))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (campaigndto.CampaignOutput, error) {
	c, err := i.svc.Get(ctx, id)
	if err != nil {
		return campaigndto.CampaignOutput{}, err
	}
	ws, err := i.svc.Workspace(ctx)
	if err != nil {
		return campaigndto.CampaignOutput{}, err
	}
	return toOutput(c, ws.ActiveCampaignID), nil
}

func (i *Interactor) Active(ctx context.Context) (campaigndto.CampaignOutput, error) {
	ws, err := i.svc.Workspace(ctx)
	if err != nil {
		return campaigndto.CampaignOutput{}, err
	}
	return i.Get(ctx, ws.ActiveCampaignID)
}

func (i *Interactor) Create(ctx context.Context, input campaigndto.CreateInput) (campaigndto.CampaignOutput, error) {
	input = input.Normalize()
	if err := apperrors.FromValidation(input.Validate()); err != nil {
		return campaigndto.CampaignOutput{}, err
	}
	var settings *domain.Settings
	if input.ImageStyle != "" || input.AIInstructions != "" {
		settings = &domain.Settings{ImageStyle: input.ImageStyle, AIInstructions: input.AIInstructions}
	}
	i.scopeMu.Lock()
	defer i.scopeMu.Unlock()
	c, err := i.svc.Create(ctx, input.Name, input.Description, settings)
	if err != nil {
		return campaigndto.CampaignOutput{}, err
	}
	if err := i.reload(ctx, c.ID); err != nil {
		return campaigndto.CampaignOutput{}, err
	}
	return toOutput(c, c.ID), nil
}

func (i *Interactor) Update(ctx context.Context, input campaigndto.UpdateInput) (campaigndto.UpdateOutput, error) {
	if err := apperrors.FromValidation(input.Validate()); err != nil {
		return campaigndto.UpdateOutput{}, err
	}
	patch, err := i.patchFor(ctx, input)
	if err != nil {
		return campaigndto.UpdateOutput{}, err
	}
	c, updated, err := i.svc.Update(ctx, input.ID, patch)
	if err != nil || !updated {
		return campaigndto.UpdateOutput{}, err
	}
	ws, err := i.svc.Workspace(ctx)
	if err != nil {
		return campaigndto.UpdateOutput{}, err
	}
	return campaigndto.UpdateOutput{Campaign: toOutput(c, ws.ActiveCampaignID), Updated: true}, nil
}

// patchFor builds a domain patch. A change to one settings field keeps the
// other from the stored record, since settings are merged as a whole.
func (i *Interactor) patchFor(ctx context.Context, input campaigndto.UpdateInput) (domain.Patch, error) {
	patch := domain.Patch{Name: trimmed(input.Name), Description: trimmed(input.Description)}
	if input.ImageStyle == nil && input.AIInstructions == nil {
		return patch, nil
	}
	current, err := i.svc.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return patch, nil
		}
		return domain.Patch{}, err
	}
	settings := current.StyleSettings()
	if input.ImageStyle != nil {
		settings.ImageStyle = *input.ImageStyle
	}
	if input.AIInstructions != nil {
		settings.AIInstructions = *input.AIInstructions
	}
	patch.Settings = &settings
	return patch, nil
}

func (i *Interactor) Delete(ctx context.Context, id string) (campaigndto.DeleteOutput, error) {
	i.scopeMu.Lock()
	defer i.scopeMu.Unlock()
	result, err := i.svc.Delete(ctx, id)
	if err != nil {
		return campaigndto.DeleteOutput{}, err
	}
	ws, err := i.svc.Workspace(ctx)
	if err != nil {
		return campaigndto.DeleteOutput{}, err
	}
	if result.ActiveChanged {
		if err := i.reload(ctx, ws.ActiveCampaignID); err != nil {
			return campaigndto.DeleteOutput{}, err
		}
	}
	out := campaigndto.DeleteOutput{Deleted: result.Deleted, ActiveCampaignID: ws.ActiveCampaignID}
	if result.Replacement != nil {
		replacement := toOutput(*result.Replacement, ws.ActiveCampaignID)
		out.Replacement = &replacement
	}
	return out, nil
}

func (i *Interactor) SwitchActive(ctx context.Context, id string) (campaigndto.WorkspaceOutput, error) {
	i.scopeMu.Lock()
	defer i.scopeMu.Unlock()
	ws, err := i.svc.SwitchActive(ctx, id)
	if err != nil {
		return campaigndto.WorkspaceOutput{}, err
	}
	if err := i.reload(ctx, ws.ActiveCampaignID); err != nil {
		return campaigndto.WorkspaceOutput{}, err
	}
	return toWorkspaceOutput(ws), nil
}

func (i *Interactor) SetLanguage(ctx context.Context, lang string) (campaigndto.WorkspaceOutput, error) {
	parsed, err := locale.Parse(lang)
	if err != nil {
		return campaigndto.WorkspaceOutput{}, err
	}
	ws, err := i.svc.SetLanguage(ctx, parsed)
	if err != nil {
		return campaigndto.WorkspaceOutput{}, err
	}
	return toWorkspaceOutput(ws), nil
}

func (i *Interactor) Workspace(ctx context.Context) (campaigndto.WorkspaceOutput, error) {
	ws, err := i.svc.Workspace(ctx)
	if err != nil {
		return campaigndto.WorkspaceOutput{}, err
	}
	return toWorkspaceOutput(ws), nil
}

func (i *Interactor) reload(ctx context.Context, campaignID string) error {
	for _, loader := range i.loaders {
		if err := loader.LoadScope(ctx, campaignID); err != nil {
			return fmt.Errorf("load campaign %s: %w", campaignID, err)
		}
	}
	return nil
}

func toOutput(c domain.Campaign, activeID string) campaigndto.CampaignOutput {
	settings := c.StyleSettings()
	return campaigndto.CampaignOutput{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		CreatedAt:      c.CreatedAt,
		ImageStyle:     settings.ImageStyle,
		AIInstructions: settings.AIInstructions,
		Active:         c.ID == activeID,
	}
}

func toWorkspaceOutput(ws domain.Workspace) campaigndto.WorkspaceOutput {
	return campaigndto.WorkspaceOutput{ActiveCampaignID: ws.ActiveCampaignID, Language: ws.Language}
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
