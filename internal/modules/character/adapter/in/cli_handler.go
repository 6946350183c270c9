package in

import (
	"context"

	characterdto "chronicle/internal/modules/character/dto"
	characterin "chronicle/internal/modules/character/port/in"
)

type CLIHandler struct {
	usecase characterin.Usecase
}

func NewCLIHandler(usecase characterin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]characterdto.CharacterOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (characterdto.CharacterOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Add(ctx context.Context, input characterdto.CharacterInput) (characterdto.CharacterOutput, error) {
	return h.usecase.Create(ctx, input)
}

// Update reads the stored record and overlays the non-empty fields of
// changes, since the repository replaces whole records.
func (h CLIHandler) Update(ctx context.Context, changes characterdto.CharacterInput) (characterdto.UpdateOutput, error) {
	current, err := h.usecase.Get(ctx, changes.ID)
	if err != nil {
		return characterdto.UpdateOutput{}, err
	}
	merged := characterdto.CharacterInput{
		ID:              current.ID,
		Name:            pick(changes.Name, current.Name),
		Race:            pick(changes.Race, current.Race),
		Class:           pick(changes.Class, current.Class),
		Description:     pick(changes.Description, current.Description),
		BackgroundStory: pick(changes.BackgroundStory, current.BackgroundStory),
		ImageURL:        pick(changes.ImageURL, current.ImageURL),
		VisualStoryURL:  pick(changes.VisualStoryURL, current.VisualStoryURL),
		Notes:           pick(changes.Notes, current.Notes),
	}
	return h.usecase.Update(ctx, merged)
}

func (h CLIHandler) Delete(ctx context.Context, id string) (bool, error) {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Portrait(ctx context.Context, id, instructions string) (characterdto.ImageOutput, error) {
	return h.usecase.Portrait(ctx, characterdto.PortraitInput{ID: id, Instructions: instructions})
}

func (h CLIHandler) Storyboard(ctx context.Context, id string) (characterdto.ImageOutput, error) {
	return h.usecase.Storyboard(ctx, id)
}

func pick(change, current string) string {
	if change != "" {
		return change
	}
	return current
}
