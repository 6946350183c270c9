// Package narrativetest provides a scripted narrative usecase for tests of
// modules that depend on generation.
package narrativetest

import (
	"context"
	"strings"
	"sync"

	"chronicle/internal/modules/narrative/dto"
	"chronicle/internal/platform/locale"
)

// Fake answers every call successfully unless a Func override is set. During,
// when set, runs before a result is returned, which lets tests change state
// while a call is "in flight".
type Fake struct {
	NarrateFunc   func(dto.NarrateInput) dto.TextOutput
	TranslateFunc func(dto.TranslateInput) dto.TextOutput
	ImageFunc     func(op string) dto.ImageOutput
	During        func(op string)

	mu    sync.Mutex
	calls []string
}

func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op {
			n++
		}
	}
	return n
}

func (f *Fake) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
	if f.During != nil {
		f.During(op)
	}
}

func (f *Fake) Narrate(_ context.Context, in dto.NarrateInput) dto.TextOutput {
	f.record("narrate")
	if f.NarrateFunc != nil {
		return f.NarrateFunc(in)
	}
	return dto.TextOutput{Text: "Tale of " + in.Notes, Status: dto.StatusOK}
}

func (f *Fake) Translate(_ context.Context, in dto.TranslateInput) dto.TextOutput {
	f.record("translate")
	if f.TranslateFunc != nil {
		return f.TranslateFunc(in)
	}
	return dto.TextOutput{Text: "[" + string(in.Target) + "] " + in.Text, Status: dto.StatusOK}
}

func (f *Fake) Portrait(context.Context, dto.PortraitInput) dto.ImageOutput {
	return f.image("portrait")
}

func (f *Fake) Storyboard(context.Context, dto.StoryboardInput) dto.ImageOutput {
	return f.image("storyboard")
}

func (f *Fake) Scene(context.Context, dto.SceneInput) dto.ImageOutput {
	return f.image("scene")
}

func (f *Fake) image(op string) dto.ImageOutput {
	f.record(op)
	if f.ImageFunc != nil {
		return f.ImageFunc(op)
	}
	return dto.ImageOutput{Handle: "data:image/png;base64," + strings.ToUpper(op), Status: dto.StatusOK}
}

// Failing returns degraded text outputs that echo the input, the way the
// real service falls back.
func Failing() *Fake {
	return &Fake{
		NarrateFunc: func(in dto.NarrateInput) dto.TextOutput {
			text := "The scribe could not decipher the events."
			if in.Language == locale.Russian {
				text = "Писец не смог разобрать события."
			}
			return dto.TextOutput{Text: text, Status: dto.StatusDegraded, Reason: "backend down"}
		},
		TranslateFunc: func(in dto.TranslateInput) dto.TextOutput {
			return dto.TextOutput{Text: in.Text, Status: dto.StatusDegraded, Reason: "backend down"}
		},
		ImageFunc: func(string) dto.ImageOutput {
			return dto.ImageOutput{Status: dto.StatusFailed, Reason: "backend down"}
		},
	}
}
