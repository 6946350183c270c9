package in

import (
	"context"

	sessiondto "chronicle/internal/modules/session/dto"
	sessionin "chronicle/internal/modules/session/port/in"
	"chronicle/internal/platform/locale"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, id, mode string) (sessiondto.ViewOutput, error) {
	return h.usecase.View(ctx, sessiondto.ViewInput{ID: id, Mode: mode})
}

func (h CLIHandler) Cast(ctx context.Context, id string) (sessiondto.CastOutput, error) {
	return h.usecase.ResolveCharacters(ctx, id)
}

// Add stores a hand-written session without calling the model.
func (h CLIHandler) Add(ctx context.Context, input sessiondto.SessionInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) Chronicle(ctx context.Context, input sessiondto.ChronicleInput) (sessiondto.ChronicleOutput, error) {
	return h.usecase.Chronicle(ctx, input)
}

func (h CLIHandler) Regenerate(ctx context.Context, id string) (sessiondto.ChronicleOutput, error) {
	return h.usecase.Regenerate(ctx, id)
}

// Update overlays the non-empty fields of changes on the stored record. A nil
// cast keeps the stored one.
func (h CLIHandler) Update(ctx context.Context, changes sessiondto.SessionInput) (sessiondto.UpdateOutput, error) {
	current, err := h.usecase.Get(ctx, changes.ID)
	if err != nil {
		return sessiondto.UpdateOutput{}, err
	}
	cast := current.CharactersInvolved
	if changes.CharactersInvolved != nil {
		cast = changes.CharactersInvolved
	}
	return h.usecase.Update(ctx, sessiondto.SessionInput{
		ID:                 current.ID,
		Date:               pick(changes.Date, current.Date),
		Title:              pick(changes.Title, current.Title),
		RawNotes:           pick(changes.RawNotes, current.RawNotes),
		Story:              pick(changes.Story, current.Story),
		ImageURL:           pick(changes.ImageURL, current.ImageURL),
		CharactersInvolved: cast,
	})
}

func (h CLIHandler) Delete(ctx context.Context, id string) (bool, error) {
	return h.usecase.Delete(ctx, id)
}

// Translate uses the workspace language when lang is empty.
func (h CLIHandler) Translate(ctx context.Context, id, lang string) (sessiondto.TranslateOutput, error) {
	var target locale.Language
	if lang != "" {
		parsed, err := locale.Parse(lang)
		if err != nil {
			return sessiondto.TranslateOutput{}, err
		}
		target = parsed
	}
	return h.usecase.Translate(ctx, sessiondto.TranslateInput{ID: id, Language: target})
}

func (h CLIHandler) Export(ctx context.Context, dir string) (sessiondto.ExportOutput, error) {
	return h.usecase.Export(ctx, dir)
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
