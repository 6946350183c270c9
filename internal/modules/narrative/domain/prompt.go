package domain

import (
	"fmt"
	"strings"

	"chronicle/internal/platform/locale"
)

const (
	DefaultImageStyle      = "Fantasy art style, Dungeons and Dragons aesthetic, oil painting texture"
	DefaultStoryboardStyle = "Graphic novel style, detailed line art with atmospheric coloring"
	quotaSuffix            = " (API Quota Exceeded)"
)

// Style is the campaign-level guidance forwarded to every prompt.
type Style struct {
	ImageStyle     string
	AIInstructions string
}

// Figure is the part of a character that prompts describe.
type Figure struct {
	Name            string
	Race            string
	Class           string
	Description     string
	BackgroundStory string
}

func NarrativeFallback(lang locale.Language, rateLimited bool) string {
	text := "The scribe could not decipher the events."
	if lang == locale.Russian {
		text = "Писец не смог разобрать события."
	}
	if rateLimited {
		text += quotaSuffix
	}
	return text
}

func SilentFallback(lang locale.Language) string {
	if lang == locale.Russian {
		return "Летописи молчат об этом."
	}
	return "The chronicles are silent on this matter."
}

func NarrativePrompt(notes string, style Style, lang locale.Language) string {
	tone := "Keep it immersive."
	if style.AIInstructions != "" {
		tone = fmt.Sprintf("Keep the following tone/rules in mind: %s.", style.AIInstructions)
	}
	langRule := "IMPORTANT: You MUST write the response in English."
	if lang == locale.Russian {
		langRule = "IMPORTANT: You MUST write the response purely in Russian."
	}
	var b strings.Builder
	b.WriteString("You are a master storyteller for a tabletop RPG.\n")
	b.WriteString("Take the following session notes and rewrite them into a compelling, atmospheric narrative paragraph (max 150 words).\n")
	b.WriteString(tone + "\n")
	b.WriteString(langRule + "\n\n")
	b.WriteString("Notes: " + notes)
	return b.String()
}

func TranslationPrompt(text string, target locale.Language) string {
	return fmt.Sprintf(`You are a professional fantasy novel translator.
Translate the following RPG narrative text into %s.

Rules:
1. Maintain the atmospheric, storytelling tone.
2. Do not add any meta-text, intro, or outro.
3. Just provide the direct translation.

Text to translate: "%s"`, target.Name(), text)
}

// VisualPrompt composes an image prompt that keeps recurring characters
// visually consistent.
func VisualPrompt(subject string, figures []Figure, style Style, context, extra string) string {
	imageStyle := style.ImageStyle
	if imageStyle == "" {
		imageStyle = DefaultImageStyle
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s. %s. ", imageStyle, subject)
	if len(figures) > 0 {
		b.WriteString(" The scene features the following characters with these specific appearances: ")
		for _, f := range figures {
			fmt.Fprintf(&b, "%s (%s %s): %s. ", f.Name, f.Race, f.Class, f.Description)
			if f.BackgroundStory != "" {
				fmt.Fprintf(&b, "Background context: %s. ", f.BackgroundStory)
			}
		}
	}
	if context != "" {
		b.WriteString(" Context: " + context)
	}
	if extra != "" {
		b.WriteString(" IMPORTANT MODIFICATION INSTRUCTIONS: " + extra)
	}
	if style.AIInstructions != "" {
		fmt.Fprintf(&b, " GLOBAL RULES: %s.", style.AIInstructions)
	}
	return b.String()
}

func ScenePrompt(story string, figures []Figure, style Style) string {
	return VisualPrompt("A scene depicting: "+story, figures, style, "", "")
}

func PortraitPrompt(f Figure, style Style, extra string) string {
	subject := fmt.Sprintf("A detailed character portrait of %s, a %s %s. %s.", f.Name, f.Race, f.Class, f.Description)
	if f.BackgroundStory != "" {
		subject += fmt.Sprintf(" Background history: %s.", f.BackgroundStory)
	}
	return VisualPrompt(subject, nil, style, "Focus on the character against a thematic background that reflects their history.", extra)
}

func StoryboardPrompt(f Figure, style Style) string {
	imageStyle := style.ImageStyle
	if imageStyle == "" {
		imageStyle = DefaultStoryboardStyle
	}
	var b strings.Builder
	b.WriteString("Create a single image that is a storyboard layout or comic book page summarizing this character's origin story.\n")
	b.WriteString("The image must contain between 4 to 8 distinct panels arranged artistically on one sheet.\n\n")
	fmt.Fprintf(&b, "Style: %s.\n", imageStyle)
	b.WriteString("Format: Vertical or Square Page Layout.\n")
	b.WriteString("Constraints: NO text, NO speech bubbles. Pure visual storytelling through sequence.\n")
	if style.AIInstructions != "" {
		fmt.Fprintf(&b, "GLOBAL RULES: %s.\n", style.AIInstructions)
	}
	fmt.Fprintf(&b, "\nCharacter: %s, %s %s.\n", f.Name, f.Race, f.Class)
	fmt.Fprintf(&b, "Appearance: %s.\n\n", f.Description)
	b.WriteString("Backstory to Visualize: " + f.BackgroundStory)
	return b.String()
}
