package timeline

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "chronicle/internal/modules/session/dto"
	"chronicle/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TimelinePort interface {
	List(ctx context.Context) ([]sessiondto.SessionOutput, error)
	Show(ctx context.Context, id, mode string) (sessiondto.ViewOutput, error)
	Translate(ctx context.Context, id, lang string) (sessiondto.TranslateOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SessionsLoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	Err      error
}

type ViewLoadedMsg struct {
	View sessiondto.ViewOutput
	Err  error
}

// TranslatedMsg also reaches the app model, which reports the outcome.
type TranslatedMsg struct {
	ID  string
	Out sessiondto.TranslateOutput
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session sessiondto.SessionOutput
}

func (i sessionItem) Title() string { return i.session.Title }
func (i sessionItem) Description() string {
	desc := i.session.Date
	if n := len(i.session.CharactersInvolved); n > 0 {
		desc += fmt.Sprintf("  %d in cast", n)
	}
	for _, lang := range slices.Sorted(maps.Keys(i.session.Translations)) {
		desc += "  [" + string(lang) + "]"
	}
	return desc
}
func (i sessionItem) FilterValue() string { return i.session.Title }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists the active campaign's sessions newest first and shows the
// selected story. Each session remembers whether the reader forced the
// original or the translation.
type Model struct {
	port        TimelinePort
	list        list.Model
	current     sessiondto.ViewOutput
	overrides   map[string]string
	translating map[string]bool
	preview     viewport.Model
	spinner     spinner.Model
	loading     bool
	width       int
	height      int
}

func New(port TimelinePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Gold).BorderForeground(theme.Gold)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Gold)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Timeline"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Gold)

	return Model{
		port:        port,
		list:        l,
		overrides:   map[string]string{},
		translating: map[string]bool{},
		preview:     vp,
		spinner:     sp,
		loading:     true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload re-reads the timeline, e.g. after the active campaign changed.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.List(context.Background())
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SessionsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Timeline: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if id, ok := m.SelectedID(); ok {
			cmds = append(cmds, m.showCmd(id))
		} else {
			m.current = sessiondto.ViewOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case ViewLoadedMsg:
		if msg.Err == nil {
			m.current = msg.View
			m.preview.SetContent(m.renderDetail())
		}

	case TranslatedMsg:
		delete(m.translating, msg.ID)
		delete(m.overrides, msg.ID)
		cmds = append(cmds, m.Reload())

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "v":
			if id, ok := m.SelectedID(); ok {
				cmds = append(cmds, m.toggle(id))
			}
		case "t":
			if id, ok := m.SelectedID(); ok && !m.translating[id] {
				m.translating[id] = true
				m.preview.SetContent(m.renderDetail())
				cmds = append(cmds, m.translateCmd(id))
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if id, ok := m.SelectedID(); ok {
				cmds = append(cmds, m.showCmd(id))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Opening the chronicle…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(sessionItem); ok {
		return item.session.ID, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

// toggle flips between the story and its translation for one session.
func (m Model) toggle(id string) tea.Cmd {
	mode := "translated"
	if m.current.Session.ID == id && m.current.Translated {
		mode = "original"
	}
	m.overrides[id] = mode
	return m.showCmd(id)
}

func (m Model) renderDetail() string {
	v := m.current
	s := v.Session
	if s.ID == "" {
		return theme.Muted.Render("No sessions yet. Press : and use chronicle to write one.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(s.Title) + "\n")
	sb.WriteString(theme.Muted.Render(s.Date) + "\n\n")
	if v.Translated {
		sb.WriteString(theme.Hot.Render("translated ("+string(v.Language)+")") + "\n\n")
	}
	sb.WriteString(v.Text + "\n")
	if s.ImageURL != "" {
		sb.WriteString("\n" + theme.Muted.Render("scene image attached") + "\n")
	}

	hints := []string{}
	switch {
	case m.translating[s.ID]:
		hints = append(hints, "translating…")
	case v.CanTranslate:
		hints = append(hints, "t: translate to "+string(v.Language))
	}
	if _, ok := s.Translations[v.Language]; ok {
		if v.Translated {
			hints = append(hints, "v: show original")
		} else {
			hints = append(hints, "v: show translation")
		}
	}
	if len(hints) > 0 {
		sb.WriteString("\n" + theme.Muted.Render(strings.Join(hints, "  ")))
	}
	return sb.String()
}

func (m Model) showCmd(id string) tea.Cmd {
	mode := m.overrides[id]
	return func() tea.Msg {
		view, err := m.port.Show(context.Background(), id, mode)
		return ViewLoadedMsg{View: view, Err: err}
	}
}

func (m Model) translateCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Translate(context.Background(), id, "")
		return TranslatedMsg{ID: id, Out: out, Err: err}
	}
}
