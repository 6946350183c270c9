package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chronicle/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

// Command describes one palette entry. Name must match a case in the app
// model's executePalette.
type Command struct {
	Name    string
	Args    string
	Summary string
}

var Commands = []Command{
	{"chronicle", "<title> | <notes>", "write a session from notes"},
	{"chronicle+image", "<title> | <notes>", "write a session and draw the scene"},
	{"regenerate", "", "rewrite the selected story"},
	{"translate", "", "translate the selected story"},
	{"session:delete", "", "delete the selected session"},
	{"character:add", "<name> | [race] | [class]", "add to the roster"},
	{"character:portrait", "[instructions]", "draw the selected character"},
	{"character:delete", "", "remove the selected character"},
	{"campaign:new", "<name>", "start a campaign and make it active"},
	{"campaign:switch", "<id>", "make a campaign active"},
	{"campaign:delete", "", "delete the selected campaign"},
	{"lang", "<en|ru>", "set the chronicle language"},
	{"export", "[dir]", "write Markdown notes"},
}

const (
	maxShownCommands = 6
	maxHistory       = 20
)

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	argStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	summaryStyle = lipgloss.NewStyle().Foreground(theme.Surface1).Italic(true)
	pickedStyle  = lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
)

// Palette is the ":" command line. It completes command names with tab and
// recalls earlier lines with up and down.
type Palette struct {
	input   textinput.Model
	open    bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "chronicle The Siege | we held the gate…"
	ti.CharLimit = 1024
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.open }

func (p *Palette) Open() tea.Cmd {
	p.open = true
	p.recall = len(p.history)
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.open = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.open {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			line := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(line)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		case tea.KeyTab:
			if matches := Match(p.input.Value()); len(matches) > 0 {
				p.input.SetValue(matches[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case tea.KeyUp:
			p.step(-1)
			return p, nil
		case tea.KeyDown:
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) remember(line string) {
	if line == "" {
		return
	}
	if n := len(p.history); n > 0 && p.history[n-1] == line {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

// step moves through history; stepping past the newest entry clears the line.
func (p *Palette) step(delta int) {
	next := p.recall + delta
	if next < 0 || next > len(p.history) {
		return
	}
	p.recall = next
	if next == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[next])
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.open {
		return ""
	}
	lines := []string{theme.Title.Render("Scribe"), p.input.View()}

	matches := Match(p.input.Value())
	if len(matches) > maxShownCommands {
		matches = matches[:maxShownCommands]
	}
	if len(matches) > 0 {
		lines = append(lines, "")
	}
	for i, c := range matches {
		name := argStyle.Render(c.Name)
		if i == 0 {
			name = pickedStyle.Render(c.Name)
		}
		row := "  " + name
		if c.Args != "" {
			row += " " + argStyle.Render(c.Args)
		}
		lines = append(lines, row+"  "+summaryStyle.Render(c.Summary))
	}

	w := p.width
	if w < 20 {
		w = 72
	}
	return frameStyle.Width(w - 2).Render(strings.Join(lines, "\n"))
}

// Match returns the commands whose name starts with the first word typed.
func Match(input string) []Command {
	word, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(input)), " ")
	var out []Command
	for _, c := range Commands {
		if strings.HasPrefix(c.Name, word) {
			out = append(out, c)
		}
	}
	return out
}
