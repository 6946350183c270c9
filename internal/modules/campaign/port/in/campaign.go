package in

import (
	"context"

	"chronicle/internal/modules/campaign/dto"
)

type Usecase interface {
	Bootstrap(ctx context.Context) (dto.WorkspaceOutput, error)
	List(ctx context.Context) ([]dto.CampaignOutput, error)
	Get(ctx context.Context, id string) (dto.CampaignOutput, error)
	Active(ctx context.Context) (dto.CampaignOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.CampaignOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.UpdateOutput, error)
	Delete(ctx context.Context, id string) (dto.DeleteOutput, error)
	SwitchActive(ctx context.Context, id string) (dto.WorkspaceOutput, error)
	SetLanguage(ctx context.Context, lang string) (dto.WorkspaceOutput, error)
	Workspace(ctx context.Context) (dto.WorkspaceOutput, error)
}
