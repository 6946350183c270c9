package usecase

import (
	"context"

	"chronicle/internal/modules/narrative/domain"
	narrativedto "chronicle/internal/modules/narrative/dto"
	narrativein "chronicle/internal/modules/narrative/port/in"
	"chronicle/internal/modules/narrative/service"
)

type Interactor struct {
	svc *service.NarrativeService
}

func NewInteractor(svc *service.NarrativeService) narrativein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Narrate(ctx context.Context, input narrativedto.NarrateInput) narrativedto.TextOutput {
	return textOutput(i.svc.Narrate(ctx, input.Notes, toStyle(input.Style), input.Language))
}

func (i *Interactor) Translate(ctx context.Context, input narrativedto.TranslateInput) narrativedto.TextOutput {
	return textOutput(i.svc.Translate(ctx, input.Text, input.Target))
}

func (i *Interactor) Portrait(ctx context.Context, input narrativedto.PortraitInput) narrativedto.ImageOutput {
	return imageOutput(i.svc.Portrait(ctx, toFigure(input.Figure), toStyle(input.Style), input.Instructions))
}

func (i *Interactor) Storyboard(ctx context.Context, input narrativedto.StoryboardInput) narrativedto.ImageOutput {
	return imageOutput(i.svc.Storyboard(ctx, toFigure(input.Figure), toStyle(input.Style)))
}

func (i *Interactor) Scene(ctx context.Context, input narrativedto.SceneInput) narrativedto.ImageOutput {
	figures := make([]domain.Figure, 0, len(input.Figures))
	for _, f := range input.Figures {
		figures = append(figures, toFigure(f))
	}
	return imageOutput(i.svc.Scene(ctx, input.Story, figures, toStyle(input.Style)))
}

func toStyle(s narrativedto.Style) domain.Style {
	return domain.Style{ImageStyle: s.ImageStyle, AIInstructions: s.AIInstructions}
}

func toFigure(f narrativedto.Figure) domain.Figure {
	return domain.Figure{
		Name:            f.Name,
		Race:            f.Race,
		Class:           f.Class,
		Description:     f.Description,
		BackgroundStory: f.BackgroundStory,
	}
}

func textOutput(o domain.Outcome[string]) narrativedto.TextOutput {
	return narrativedto.TextOutput{Text: o.Value, Status: string(o.Status), Reason: o.Reason()}
}

func imageOutput(o domain.Outcome[string]) narrativedto.ImageOutput {
	return narrativedto.ImageOutput{Handle: o.Value, Status: string(o.Status), Reason: o.Reason()}
}
