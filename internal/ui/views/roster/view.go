package roster

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	characterdto "chronicle/internal/modules/character/dto"
	"chronicle/internal/ui/theme"
)

type RosterPort interface {
	List(ctx context.Context) ([]characterdto.CharacterOutput, error)
	Portrait(ctx context.Context, id, instructions string) (characterdto.ImageOutput, error)
	Storyboard(ctx context.Context, id string) (characterdto.ImageOutput, error)
}

type CharactersLoadedMsg struct {
	Characters []characterdto.CharacterOutput
	Err        error
}

// ImageDoneMsg reports a portrait or storyboard attempt to the app model.
type ImageDoneMsg struct {
	ID   string
	Kind string
	Out  characterdto.ImageOutput
	Err  error
}

type characterItem struct {
	character characterdto.CharacterOutput
}

func (i characterItem) Title() string { return i.character.Name }
func (i characterItem) Description() string {
	parts := []string{}
	for _, p := range []string{i.character.Race, i.character.Class} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}
func (i characterItem) FilterValue() string { return i.character.Name }

type Model struct {
	port    RosterPort
	list    list.Model
	detail  viewport.Model
	pending map[string]string
	width   int
	height  int
}

func New(port RosterPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Roster"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, list: l, detail: vp, pending: map[string]string{}}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		characters, err := m.port.List(context.Background())
		return CharactersLoadedMsg{Characters: characters, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 4 / 10
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = m.height - 4

	case CharactersLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Roster: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Characters))
		for i, c := range msg.Characters {
			items[i] = characterItem{character: c}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case ImageDoneMsg:
		delete(m.pending, msg.ID)
		cmds = append(cmds, m.Reload())

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		id, ok := m.SelectedID()
		if !ok || m.pending[id] != "" {
			break
		}
		switch msg.String() {
		case "p":
			m.pending[id] = "portrait"
			cmds = append(cmds, m.PortraitCmd(id, ""))
		case "b":
			m.pending[id] = "storyboard"
			cmds = append(cmds, m.storyboardCmd(id))
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	m.detail.SetContent(m.renderDetail())

	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(characterItem); ok {
		return item.character.ID, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// PortraitCmd is also used by the palette, which can pass extra instructions.
func (m Model) PortraitCmd(id, instructions string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Portrait(context.Background(), id, instructions)
		return ImageDoneMsg{ID: id, Kind: "portrait", Out: out, Err: err}
	}
}

func (m Model) storyboardCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Storyboard(context.Background(), id)
		return ImageDoneMsg{ID: id, Kind: "storyboard", Out: out, Err: err}
	}
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(characterItem)
	if !ok {
		return theme.Muted.Render("No characters yet. Press : and use character:add.")
	}
	c := item.character
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(c.Name) + "\n")
	sb.WriteString(theme.Muted.Render(item.Description()) + "\n\n")
	if c.Description != "" {
		sb.WriteString(c.Description + "\n\n")
	}
	if c.BackgroundStory != "" {
		sb.WriteString(theme.Muted.Render("backstory") + "\n" + c.BackgroundStory + "\n\n")
	}
	if c.Notes != "" {
		sb.WriteString(theme.Muted.Render("notes") + "\n" + c.Notes + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("portrait:   ") + presence(c.ImageURL) + "\n")
	sb.WriteString(theme.Muted.Render("storyboard: ") + presence(c.VisualStoryURL) + "\n")

	if kind := m.pending[c.ID]; kind != "" {
		sb.WriteString("\n" + theme.Hot.Render("drawing "+kind+"…"))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("p: portrait  b: storyboard"))
	}
	return sb.String()
}

func presence(handle string) string {
	if handle == "" {
		return theme.Muted.Render("none")
	}
	return theme.Good.Render("stored")
}
