package usecase_test

import (
	"context"
	"strings"
	"testing"

	"chronicle/internal/modules/narrative/domain"
	narrativedto "chronicle/internal/modules/narrative/dto"
	"chronicle/internal/modules/narrative/service"
	"chronicle/internal/modules/narrative/usecase"
	"chronicle/internal/platform/locale"
)

type scriptedModel struct {
	text    string
	textErr error
	image   domain.Image
	prompts []string
}

func (m *scriptedModel) GenerateText(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.text, m.textErr
}

func (m *scriptedModel) GenerateImage(_ context.Context, prompt string) (domain.Image, error) {
	m.prompts = append(m.prompts, prompt)
	return m.image, nil
}

func TestNarrateMapsStyleAndStatus(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{text: "The bridge fell."}
	uc := usecase.NewInteractor(service.NewNarrativeService(model, 0, nil, nil))

	out := uc.Narrate(context.Background(), narrativedto.NarrateInput{
		Notes:    "we cut the ropes",
		Style:    narrativedto.Style{AIInstructions: "grim and terse"},
		Language: locale.Russian,
	})
	if !out.OK() || out.Text != "The bridge fell." || out.Reason != "" {
		t.Fatalf("unexpected output: %+v", out)
	}
	want := domain.NarrativePrompt("we cut the ropes", domain.Style{AIInstructions: "grim and terse"}, locale.Russian)
	if len(model.prompts) != 1 || model.prompts[0] != want {
		t.Fatalf("prompt = %q, want %q", model.prompts, want)
	}
}

func TestTranslateDegradedCarriesReason(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{textErr: domain.ErrRateLimited}
	uc := usecase.NewInteractor(service.NewNarrativeService(model, 0, nil, nil))

	out := uc.Translate(context.Background(), narrativedto.TranslateInput{Text: "Once upon a time...", Target: locale.Russian})
	if out.Status != narrativedto.StatusDegraded {
		t.Fatalf("status = %q, want degraded", out.Status)
	}
	if out.Text != "Once upon a time..." {
		t.Fatalf("degraded translation must return the original, got %q", out.Text)
	}
	if !strings.Contains(out.Reason, domain.ErrRateLimited.Error()) {
		t.Fatalf("reason = %q", out.Reason)
	}
}

func TestSceneMapsFigures(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{image: domain.Image{MIMEType: "image/png", Data: []byte("px")}}
	uc := usecase.NewInteractor(service.NewNarrativeService(model, 0, nil, nil))

	out := uc.Scene(context.Background(), narrativedto.SceneInput{
		Story:   "A duel at dawn.",
		Figures: []narrativedto.Figure{{Name: "Ysolde", Race: "Elf", Class: "Ranger"}},
		Style:   narrativedto.Style{ImageStyle: "ink wash"},
	})
	if !out.OK() || !strings.HasPrefix(out.Handle, "data:image/png;base64,") {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(model.prompts) != 1 || !strings.Contains(model.prompts[0], "Ysolde") || !strings.Contains(model.prompts[0], "ink wash") {
		t.Fatalf("scene prompt lost figures or style: %q", model.prompts)
	}
}

func TestStoryboardWithoutBackstoryFails(t *testing.T) {
	t.Parallel()

	model := &scriptedModel{}
	uc := usecase.NewInteractor(service.NewNarrativeService(model, 0, nil, nil))

	out := uc.Storyboard(context.Background(), narrativedto.StoryboardInput{Figure: narrativedto.Figure{Name: "Brann"}})
	if out.OK() || out.Status != narrativedto.StatusFailed || out.Handle != "" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(model.prompts) != 0 {
		t.Fatalf("model must not be called, got %d prompts", len(model.prompts))
	}
}
