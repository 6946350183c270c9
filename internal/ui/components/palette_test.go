package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMatchUsesFirstWord(t *testing.T) {
	t.Parallel()

	got := Match("Campaign:sw 42")
	if len(got) != 1 || got[0].Name != "campaign:switch" {
		t.Fatalf("Match = %+v", got)
	}
	if all := Match(""); len(all) != len(Commands) {
		t.Fatalf("empty input should list every command, got %d", len(all))
	}
	if none := Match("quaff"); len(none) != 0 {
		t.Fatalf("unexpected matches: %+v", none)
	}
}

func TestPaletteRecallsHistory(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	for _, line := range []string{"lang ru", "export", "export"} {
		p.Open()
		p.input.SetValue(line)
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	if len(p.history) != 2 {
		t.Fatalf("history = %q, repeated lines should collapse", p.history)
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := p.input.Value(); got != "export" {
		t.Fatalf("first recall = %q", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := p.input.Value(); got != "lang ru" {
		t.Fatalf("recall should stop at the oldest line, got %q", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := p.input.Value(); got != "" {
		t.Fatalf("stepping past the newest line should clear, got %q", got)
	}
}

func TestPaletteTabCompletes(t *testing.T) {
	t.Parallel()

	p := NewPalette()
	p.Open()
	p.input.SetValue("char")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "character:add " {
		t.Fatalf("completion = %q", got)
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() || cmd == nil {
		t.Fatalf("esc should close and emit a cancel message")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("esc should emit PaletteCancelMsg")
	}
}
