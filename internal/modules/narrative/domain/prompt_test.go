package domain_test

import (
	"strings"
	"testing"

	"chronicle/internal/modules/narrative/domain"
	"chronicle/internal/platform/locale"
)

func TestNarrativePromptCarriesToneAndLanguage(t *testing.T) {
	t.Parallel()

	prompt := domain.NarrativePrompt("we fought a troll", domain.Style{AIInstructions: "grim and low magic"}, locale.Russian)
	for _, want := range []string{"max 150 words", "grim and low magic", "purely in Russian", "Notes: we fought a troll"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if !strings.Contains(domain.NarrativePrompt("x", domain.Style{}, locale.English), "Keep it immersive.") {
		t.Fatalf("default tone missing")
	}
}

func TestVisualPromptDefaultsAndFigures(t *testing.T) {
	t.Parallel()

	figures := []domain.Figure{{Name: "Ysolde", Race: "Elf", Class: "Ranger", Description: "silver hair", BackgroundStory: "exiled"}}
	prompt := domain.ScenePrompt("an ambush at dusk", figures, domain.Style{})
	if !strings.HasPrefix(prompt, domain.DefaultImageStyle) {
		t.Fatalf("default style not applied: %s", prompt)
	}
	for _, want := range []string{"A scene depicting: an ambush at dusk", "Ysolde (Elf Ranger): silver hair", "Background context: exiled"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
	custom := domain.PortraitPrompt(figures[0], domain.Style{ImageStyle: "woodcut", AIInstructions: "no gore"}, "add a scar")
	for _, want := range []string{"woodcut.", "IMPORTANT MODIFICATION INSTRUCTIONS: add a scar", "GLOBAL RULES: no gore."} {
		if !strings.Contains(custom, want) {
			t.Fatalf("portrait prompt missing %q:\n%s", want, custom)
		}
	}
}

func TestStoryboardPromptDefaultStyle(t *testing.T) {
	t.Parallel()

	prompt := domain.StoryboardPrompt(domain.Figure{Name: "Brann", BackgroundStory: "lost his clan"}, domain.Style{})
	if !strings.Contains(prompt, "Style: "+domain.DefaultStoryboardStyle) || !strings.Contains(prompt, "lost his clan") {
		t.Fatalf("unexpected storyboard prompt:\n%s", prompt)
	}
}

func TestFallbacks(t *testing.T) {
	t.Parallel()

	if got := domain.NarrativeFallback(locale.English, true); got != "The scribe could not decipher the events. (API Quota Exceeded)" {
		t.Fatalf("fallback = %q", got)
	}
	if got := domain.SilentFallback(locale.Russian); got != "Летописи молчат об этом." {
		t.Fatalf("silent ru = %q", got)
	}
	if got := (domain.Image{Data: []byte("hi")}).Handle(); got != "data:image/png;base64,aGk=" {
		t.Fatalf("handle = %q", got)
	}
}
