package in

import (
	"context"

	campaigndto "chronicle/internal/modules/campaign/dto"
	campaignin "chronicle/internal/modules/campaign/port/in"
)

type CLIHandler struct {
	usecase campaignin.Usecase
}

func NewCLIHandler(usecase campaignin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]campaigndto.CampaignOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Create(ctx context.Context, name, description, imageStyle, aiInstructions string) (campaigndto.CampaignOutput, error) {
	return h.usecase.Create(ctx, campaigndto.CreateInput{
		Name:           name,
		Description:    description,
		ImageStyle:     imageStyle,
		AIInstructions: aiInstructions,
	})
}

func (h CLIHandler) Update(ctx context.Context, input campaigndto.UpdateInput) (campaigndto.UpdateOutput, error) {
	return h.usecase.Update(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) (campaigndto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Switch(ctx context.Context, id string) (campaigndto.WorkspaceOutput, error) {
	return h.usecase.SwitchActive(ctx, id)
}

func (h CLIHandler) Language(ctx context.Context, lang string) (campaigndto.WorkspaceOutput, error) {
	if lang == "" {
		return h.usecase.Workspace(ctx)
	}
	return h.usecase.SetLanguage(ctx, lang)
}
