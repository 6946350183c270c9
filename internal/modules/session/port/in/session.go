package in

import (
	"context"

	"chronicle/internal/modules/session/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.SessionOutput, error)
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
	Create(ctx context.Context, input dto.SessionInput) (dto.SessionOutput, error)
	Update(ctx context.Context, input dto.SessionInput) (dto.UpdateOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetTranslation(ctx context.Context, input dto.SetTranslationInput) (dto.SetTranslationOutput, error)

	Chronicle(ctx context.Context, input dto.ChronicleInput) (dto.ChronicleOutput, error)
	Regenerate(ctx context.Context, id string) (dto.ChronicleOutput, error)
	Translate(ctx context.Context, input dto.TranslateInput) (dto.TranslateOutput, error)
	ResolveCharacters(ctx context.Context, id string) (dto.CastOutput, error)
	View(ctx context.Context, input dto.ViewInput) (dto.ViewOutput, error)
	Export(ctx context.Context, dir string) (dto.ExportOutput, error)
}
