package campaigns

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	campaigndto "chronicle/internal/modules/campaign/dto"
	"chronicle/internal/ui/theme"
)

type CampaignPort interface {
	List(ctx context.Context) ([]campaigndto.CampaignOutput, error)
	Switch(ctx context.Context, id string) (campaigndto.WorkspaceOutput, error)
}

type CampaignsLoadedMsg struct {
	Campaigns []campaigndto.CampaignOutput
	Err       error
}

// SwitchedMsg tells the app model to reload the timeline and roster.
type SwitchedMsg struct {
	Name      string
	Workspace campaigndto.WorkspaceOutput
	Err       error
}

type campaignItem struct {
	campaign campaigndto.CampaignOutput
}

func (i campaignItem) Title() string {
	if i.campaign.Active {
		return "● " + i.campaign.Name
	}
	return i.campaign.Name
}
func (i campaignItem) Description() string {
	desc := i.campaign.CreatedAt.Format("2006-01-02")
	if i.campaign.Description != "" {
		desc += "  " + firstLine(i.campaign.Description)
	}
	return desc
}
func (i campaignItem) FilterValue() string { return i.campaign.Name }

type Model struct {
	port   CampaignPort
	list   list.Model
	width  int
	height int
}

func New(port CampaignPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Campaigns"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		list, err := m.port.List(context.Background())
		return CampaignsLoadedMsg{Campaigns: list, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case CampaignsLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Campaigns: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Campaigns))
		for i, c := range msg.Campaigns {
			items[i] = campaignItem{campaign: c}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(campaignItem); ok && !item.campaign.Active {
				cmds = append(cmds, m.SwitchCmd(item.campaign.ID, item.campaign.Name))
			}
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	hint := theme.Muted.Render("enter: make active")
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), hint)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(campaignItem); ok {
		return item.campaign.ID, true
	}
	return "", false
}

func (m Model) SwitchCmd(id, name string) tea.Cmd {
	return func() tea.Msg {
		ws, err := m.port.Switch(context.Background(), id)
		return SwitchedMsg{Name: name, Workspace: ws, Err: err}
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
