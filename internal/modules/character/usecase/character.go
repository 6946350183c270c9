package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	campaignin "chronicle/internal/modules/campaign/port/in"
	"chronicle/internal/modules/character/domain"
	characterdto "chronicle/internal/modules/character/dto"
	characterin "chronicle/internal/modules/character/port/in"
	"chronicle/internal/modules/character/service"
	narrativedto "chronicle/internal/modules/narrative/dto"
	narrativein "chronicle/internal/modules/narrative/port/in"
	apperrors "chronicle/internal/platform/errors"
	"chronicle/internal/platform/logging"
)

type Interactor struct {
	svc       *service.CharacterService
	campaigns campaignin.Usecase
	narrative narrativein.Usecase
	log       *zap.Logger
}

func NewInteractor(svc *service.CharacterService, campaigns campaignin.Usecase, narrative narrativein.Usecase, logger *zap.Logger) characterin.Usecase {
	return &Interactor{svc: svc, campaigns: campaigns, narrative: narrative, log: logging.OrNop(logger)}
}

func (i *Interactor) List(ctx context.Context) ([]characterdto.CharacterOutput, error) {
	list, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]characterdto.CharacterOutput, 0, len(list))
	for _, c := range list {
		out = append(out, toOutput(c))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (characterdto.CharacterOutput, error) {
	c, ok, err := i.svc.Get(ctx, id)
	if err != nil {
		return characterdto.CharacterOutput{}, err
	}
	if !ok {
		return characterdto.CharacterOutput{}, fmt.Errorf("character %s: %w", id, apperrors.ErrNotFound)
	}
	return toOutput(c), nil
}

func (i *Interactor) Create(ctx context.Context, input characterdto.CharacterInput) (characterdto.CharacterOutput, error) {
	input = input.Normalize()
	if err := apperrors.FromValidation(input.Validate()); err != nil {
		return characterdto.CharacterOutput{}, err
	}
	c, err := i.svc.Create(ctx, fromInput(input))
	if err != nil {
		return characterdto.CharacterOutput{}, err
	}
	return toOutput(c), nil
}

func (i *Interactor) Update(ctx context.Context, input characterdto.CharacterInput) (characterdto.UpdateOutput, error) {
	input = input.Normalize()
	if input.ID == "" {
		return characterdto.UpdateOutput{}, apperrors.Invalid("id", "cannot be blank")
	}
	if err := apperrors.FromValidation(input.Validate()); err != nil {
		return characterdto.UpdateOutput{}, err
	}
	c := fromInput(input)
	updated, err := i.svc.Update(ctx, c)
	if err != nil || !updated {
		return characterdto.UpdateOutput{}, err
	}
	return characterdto.UpdateOutput{Character: toOutput(c), Updated: true}, nil
}

func (i *Interactor) Delete(ctx context.Context, id string) (bool, error) {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Resolve(ctx context.Context, ids []string) (characterdto.ResolveOutput, error) {
	known, unknown, err := i.svc.Resolve(ctx, ids)
	if err != nil {
		return characterdto.ResolveOutput{}, err
	}
	out := characterdto.ResolveOutput{Known: make([]characterdto.CharacterOutput, 0, len(known)), Unknown: unknown}
	for _, c := range known {
		out.Known = append(out.Known, toOutput(c))
	}
	return out, nil
}

// Portrait generates a portrait and stores it on the character as it exists
// when the image arrives. A failed generation leaves the old portrait.
func (i *Interactor) Portrait(ctx context.Context, input characterdto.PortraitInput) (characterdto.ImageOutput, error) {
	c, style, scope, err := i.prepare(ctx, input.ID)
	if err != nil {
		return characterdto.ImageOutput{}, err
	}
	res := i.narrative.Portrait(ctx, narrativedto.PortraitInput{Figure: toOutput(c).Figure(), Style: style, Instructions: input.Instructions})
	return i.writeBack(ctx, scope, c, res, func(target *domain.Character) { target.ImageURL = res.Handle })
}

// Storyboard requires a background story and fails with ErrPrecondition
// before any generation when there is none.
func (i *Interactor) Storyboard(ctx context.Context, id string) (characterdto.ImageOutput, error) {
	c, style, scope, err := i.prepare(ctx, id)
	if err != nil {
		return characterdto.ImageOutput{}, err
	}
	if c.BackgroundStory == "" {
		return characterdto.ImageOutput{}, fmt.Errorf("storyboard for %s needs a background story: %w", c.Name, apperrors.ErrPrecondition)
	}
	res := i.narrative.Storyboard(ctx, narrativedto.StoryboardInput{Figure: toOutput(c).Figure(), Style: style})
	return i.writeBack(ctx, scope, c, res, func(target *domain.Character) { target.VisualStoryURL = res.Handle })
}

func (i *Interactor) prepare(ctx context.Context, id string) (domain.Character, narrativedto.Style, string, error) {
	scope := i.svc.Scope()
	c, ok, err := i.svc.Get(ctx, id)
	if err != nil {
		return domain.Character{}, narrativedto.Style{}, "", err
	}
	if !ok {
		return domain.Character{}, narrativedto.Style{}, "", fmt.Errorf("character %s: %w", id, apperrors.ErrNotFound)
	}
	style, err := i.style(ctx)
	if err != nil {
		return domain.Character{}, narrativedto.Style{}, "", err
	}
	return c, style, scope, nil
}

func (i *Interactor) writeBack(ctx context.Context, scope string, c domain.Character, res narrativedto.ImageOutput, apply func(*domain.Character)) (characterdto.ImageOutput, error) {
	out := characterdto.ImageOutput{Character: toOutput(c), Status: res.Status, Reason: res.Reason}
	if !res.OK() {
		i.log.Info("character image not generated", zap.String("character_id", c.ID), zap.String("reason", res.Reason))
		return out, nil
	}
	updated, saved, err := i.svc.Mutate(ctx, scope, c.ID, apply)
	if err != nil {
		return characterdto.ImageOutput{}, err
	}
	if saved {
		out.Character = toOutput(updated)
		out.Saved = true
	}
	return out, nil
}

func (i *Interactor) style(ctx context.Context) (narrativedto.Style, error) {
	if i.campaigns == nil {
		return narrativedto.Style{}, nil
	}
	active, err := i.campaigns.Active(ctx)
	if err != nil {
		return narrativedto.Style{}, err
	}
	return narrativedto.Style{ImageStyle: active.ImageStyle, AIInstructions: active.AIInstructions}, nil
}

func fromInput(in characterdto.CharacterInput) domain.Character {
	return domain.Character{
		ID:              in.ID,
		Name:            in.Name,
		Race:            in.Race,
		Class:           in.Class,
		Description:     in.Description,
		BackgroundStory: in.BackgroundStory,
		ImageURL:        in.ImageURL,
		VisualStoryURL:  in.VisualStoryURL,
		Notes:           in.Notes,
	}
}

func toOutput(c domain.Character) characterdto.CharacterOutput {
	return characterdto.CharacterOutput{
		ID:              c.ID,
		Name:            c.Name,
		Race:            c.Race,
		Class:           c.Class,
		Description:     c.Description,
		BackgroundStory: c.BackgroundStory,
		ImageURL:        c.ImageURL,
		VisualStoryURL:  c.VisualStoryURL,
		Notes:           c.Notes,
	}
}
