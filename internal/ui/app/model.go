package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	campaigndto "chronicle/internal/modules/campaign/dto"
	characterdto "chronicle/internal/modules/character/dto"
	narrativedto "chronicle/internal/modules/narrative/dto"
	sessiondto "chronicle/internal/modules/session/dto"
	"chronicle/internal/ui/components"
	"chronicle/internal/ui/theme"
	campaignsview "chronicle/internal/ui/views/campaigns"
	rosterview "chronicle/internal/ui/views/roster"
	timelineview "chronicle/internal/ui/views/timeline"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type campaignPort interface {
	List(ctx context.Context) ([]campaigndto.CampaignOutput, error)
	Create(ctx context.Context, name, description, imageStyle, aiInstructions string) (campaigndto.CampaignOutput, error)
	Delete(ctx context.Context, id string) (campaigndto.DeleteOutput, error)
	Switch(ctx context.Context, id string) (campaigndto.WorkspaceOutput, error)
	Language(ctx context.Context, lang string) (campaigndto.WorkspaceOutput, error)
}

type sessionPort interface {
	List(ctx context.Context) ([]sessiondto.SessionOutput, error)
	Show(ctx context.Context, id, mode string) (sessiondto.ViewOutput, error)
	Chronicle(ctx context.Context, input sessiondto.ChronicleInput) (sessiondto.ChronicleOutput, error)
	Regenerate(ctx context.Context, id string) (sessiondto.ChronicleOutput, error)
	Translate(ctx context.Context, id, lang string) (sessiondto.TranslateOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
	Export(ctx context.Context, dir string) (sessiondto.ExportOutput, error)
}

type characterPort interface {
	List(ctx context.Context) ([]characterdto.CharacterOutput, error)
	Add(ctx context.Context, input characterdto.CharacterInput) (characterdto.CharacterOutput, error)
	Delete(ctx context.Context, id string) (bool, error)
	Portrait(ctx context.Context, id, instructions string) (characterdto.ImageOutput, error)
	Storyboard(ctx context.Context, id string) (characterdto.ImageOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimeline tabID = iota
	tabRoster
	tabCampaigns
	tabCount
)

var tabLabels = [tabCount]string{"Timeline", "Roster", "Campaigns"}

// ─── async messages ───────────────────────────────────────────────────────────

type workspaceLoadedMsg struct {
	workspace campaigndto.WorkspaceOutput
	err       error
	// changed is set after a language switch; the timeline picks its default
	// text by language.
	changed bool
}

// doneMsg finishes a palette action. reload lists the views that must
// re-read their data.
type doneMsg struct {
	status string
	err    error
	reload []tabID
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Palette   key.Binding
	Quit      key.Binding
	Toggle    key.Binding
	Translate key.Binding
	Portrait  key.Binding
	Board     key.Binding
	Language  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "original/translation")),
		Translate: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "translate")),
		Portrait:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "portrait")),
		Board:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "storyboard")),
		Language:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "switch language")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Language},
		{k.Toggle, k.Translate},
		{k.Portrait, k.Board},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the workspace
// header, the help overlay and the command palette. Generation runs in
// commands, so the tabs stay usable while the scribe works.
type Model struct {
	exportDir string

	campaigns  campaignPort
	sessions   sessionPort
	characters characterPort

	timelineView  timelineview.Model
	rosterView    rosterview.Model
	campaignsView campaignsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	workspace campaigndto.WorkspaceOutput
	busy      int
	status    string
	width     int
	height    int
}

func NewModel(campaigns campaignPort, sessions sessionPort, characters characterPort, exportDir string) Model {
	return Model{
		exportDir:     exportDir,
		campaigns:     campaigns,
		sessions:      sessions,
		characters:    characters,
		timelineView:  timelineview.New(sessions),
		rosterView:    rosterview.New(characters),
		campaignsView: campaignsview.New(campaigns),
		activeTab:     tabTimeline,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.timelineView.Init(),
		m.rosterView.Init(),
		m.campaignsView.Init(),
		m.loadWorkspaceCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case workspaceLoadedMsg:
		if msg.err != nil {
			m.status = "workspace: " + msg.err.Error()
			return m, nil
		}
		m.workspace = msg.workspace
		if msg.changed {
			m.status = "language: " + m.workspace.Language.Name()
			return m, m.timelineView.Reload()
		}
		return m, nil

	case doneMsg:
		m.busy = max(m.busy-1, 0)
		if msg.err != nil {
			m.status = theme.Error.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}
		return m, m.reloadCmd(msg.reload)

	case campaignsview.SwitchedMsg:
		if msg.Err != nil {
			m.status = theme.Error.Render("switch: " + msg.Err.Error())
			return m, nil
		}
		m.workspace = msg.Workspace
		m.status = "now chronicling " + msg.Name
		m.activeTab = tabTimeline
		return m, m.reloadCmd([]tabID{tabTimeline, tabRoster, tabCampaigns})

	case timelineview.TranslatedMsg:
		m.status = translateStatus(msg)
		var cmd tea.Cmd
		m.timelineView, cmd = m.timelineView.Update(msg)
		return m, cmd

	case rosterview.ImageDoneMsg:
		m.status = imageStatus(msg)
		var cmd tea.Cmd
		m.rosterView, cmd = m.rosterView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "L":
			return m, m.languageCmd(string(m.workspace.Language.Other()))
		}
	}

	// Data messages go to every view; keys only to the active tab.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		var tabCmd tea.Cmd
		switch m.activeTab {
		case tabTimeline:
			m.timelineView, tabCmd = m.timelineView.Update(msg)
		case tabRoster:
			m.rosterView, tabCmd = m.rosterView.Update(msg)
		case tabCampaigns:
			m.campaignsView, tabCmd = m.campaignsView.Update(msg)
		}
		return m, tabCmd
	}

	var cmd tea.Cmd
	m.timelineView, cmd = m.timelineView.Update(msg)
	cmds = append(cmds, cmd)
	m.rosterView, cmd = m.rosterView.Update(msg)
	cmds = append(cmds, cmd)
	m.campaignsView, cmd = m.campaignsView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimeline:
		return m.timelineView.View()
	case tabRoster:
		return m.rosterView.View()
	case tabCampaigns:
		return m.campaignsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "chronicle  " + strings.Join(parts, sep)
	if m.workspace.Language != "" {
		bar += theme.Muted.Render("   lang: " + m.workspace.Language.Name())
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.busy > 0 {
		left = theme.Hot.Render("✒ the scribe is writing") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	command, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	selectedSession, _ := m.timelineView.SelectedID()
	selectedCharacter, _ := m.rosterView.SelectedID()

	switch command {
	case "chronicle", "chronicle+image":
		title, notes, ok := strings.Cut(rest, "|")
		if !ok {
			m.status = "usage: " + command + " <title> | <notes>"
			return m, nil
		}
		m.activeTab = tabTimeline
		return m.start(m.chronicleCmd(sessiondto.ChronicleInput{
			Title:     strings.TrimSpace(title),
			RawNotes:  strings.TrimSpace(notes),
			WithImage: command == "chronicle+image",
		}))

	case "regenerate":
		if selectedSession == "" {
			m.status = "no session selected"
			return m, nil
		}
		return m.start(m.regenerateCmd(selectedSession))

	case "translate":
		if selectedSession == "" {
			m.status = "no session selected"
			return m, nil
		}
		var cmd tea.Cmd
		m.timelineView, cmd = m.timelineView.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
		return m, cmd

	case "session:delete":
		if selectedSession == "" {
			m.status = "no session selected"
			return m, nil
		}
		return m.start(m.action("session deleted", []tabID{tabTimeline}, func(ctx context.Context) error {
			_, err := m.sessions.Delete(ctx, selectedSession)
			return err
		}))

	case "character:add":
		fields := splitFields(rest, 3)
		if fields[0] == "" {
			m.status = "usage: character:add <name> | [race] | [class]"
			return m, nil
		}
		m.activeTab = tabRoster
		return m.start(m.action("character added: "+fields[0], []tabID{tabRoster}, func(ctx context.Context) error {
			_, err := m.characters.Add(ctx, characterdto.CharacterInput{Name: fields[0], Race: fields[1], Class: fields[2]})
			return err
		}))

	case "character:portrait":
		if selectedCharacter == "" {
			m.status = "no character selected"
			return m, nil
		}
		m.activeTab = tabRoster
		return m, m.rosterView.PortraitCmd(selectedCharacter, rest)

	case "character:delete":
		if selectedCharacter == "" {
			m.status = "no character selected"
			return m, nil
		}
		return m.start(m.action("character deleted", []tabID{tabRoster}, func(ctx context.Context) error {
			_, err := m.characters.Delete(ctx, selectedCharacter)
			return err
		}))

	case "campaign:new":
		if rest == "" {
			m.status = "usage: campaign:new <name>"
			return m, nil
		}
		m.activeTab = tabTimeline
		return m.start(m.action("now chronicling "+rest, allTabs(), func(ctx context.Context) error {
			_, err := m.campaigns.Create(ctx, rest, "", "", "")
			return err
		}))

	case "campaign:switch":
		if rest == "" {
			m.status = "usage: campaign:switch <id>"
			return m, nil
		}
		return m, m.campaignsView.SwitchCmd(rest, rest)

	case "campaign:delete":
		id, ok := m.campaignsView.SelectedID()
		if m.activeTab != tabCampaigns || !ok {
			m.status = "select a campaign on the Campaigns tab first"
			return m, nil
		}
		return m.start(m.action("campaign deleted", allTabs(), func(ctx context.Context) error {
			_, err := m.campaigns.Delete(ctx, id)
			return err
		}))

	case "lang":
		return m, m.languageCmd(rest)

	case "export":
		dir := rest
		if dir == "" {
			dir = m.exportDir
		}
		return m.start(m.exportCmd(dir))

	default:
		m.status = "unknown command: " + command
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabTimeline:
		return m.timelineView.Filtering()
	case tabRoster:
		return m.rosterView.Filtering()
	case tabCampaigns:
		return m.campaignsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timelineView, _ = m.timelineView.Update(sz)
	m.rosterView, _ = m.rosterView.Update(sz)
	m.campaignsView, _ = m.campaignsView.Update(sz)
}

func (m Model) start(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy++
	return m, cmd
}

func (m Model) reloadCmd(tabs []tabID) tea.Cmd {
	var cmds []tea.Cmd
	for _, tab := range tabs {
		switch tab {
		case tabTimeline:
			cmds = append(cmds, m.timelineView.Reload())
		case tabRoster:
			cmds = append(cmds, m.rosterView.Reload())
		case tabCampaigns:
			cmds = append(cmds, m.campaignsView.Reload(), m.loadWorkspaceCmd())
		}
	}
	return tea.Batch(cmds...)
}

func allTabs() []tabID {
	return []tabID{tabTimeline, tabRoster, tabCampaigns}
}

func splitFields(input string, n int) []string {
	out := make([]string, n)
	for i, part := range strings.SplitN(input, "|", n) {
		out[i] = strings.TrimSpace(part)
	}
	return out
}

func translateStatus(msg timelineview.TranslatedMsg) string {
	if msg.Err != nil {
		return theme.Error.Render("translate: " + msg.Err.Error())
	}
	switch msg.Out.Status {
	case sessiondto.TranslationStored, sessiondto.TranslationCached:
		return theme.Good.Render("translation ready")
	case sessiondto.TranslationDegraded:
		return theme.Error.Render("translation failed, showing original: " + msg.Out.Reason)
	case sessiondto.TranslationDiscarded:
		return "story changed while translating, try again"
	default:
		return "nothing to translate"
	}
}

func imageStatus(msg rosterview.ImageDoneMsg) string {
	switch {
	case msg.Err != nil:
		return theme.Error.Render(msg.Kind + ": " + msg.Err.Error())
	case msg.Out.Saved:
		return theme.Good.Render(msg.Kind + " saved for " + msg.Out.Character.Name)
	case msg.Out.Reason != "":
		return theme.Error.Render(msg.Kind + " failed: " + msg.Out.Reason)
	default:
		return msg.Kind + " discarded"
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadWorkspaceCmd() tea.Cmd {
	return func() tea.Msg {
		ws, err := m.campaigns.Language(context.Background(), "")
		return workspaceLoadedMsg{workspace: ws, err: err}
	}
}

func (m Model) languageCmd(lang string) tea.Cmd {
	return func() tea.Msg {
		ws, err := m.campaigns.Language(context.Background(), lang)
		if err != nil {
			return workspaceLoadedMsg{err: err}
		}
		return workspaceLoadedMsg{workspace: ws, changed: true}
	}
}

func (m Model) action(status string, reload []tabID, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := fn(context.Background())
		return doneMsg{status: status, err: err, reload: reload}
	}
}

func (m Model) chronicleCmd(input sessiondto.ChronicleInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sessions.Chronicle(context.Background(), input)
		if err != nil {
			return doneMsg{err: err}
		}
		status := "chronicled: " + out.Session.Title
		if out.StoryStatus != narrativedto.StatusOK || (input.WithImage && out.ImageStatus != narrativedto.StatusOK) {
			status = fmt.Sprintf("chronicled with fallbacks: %s (%s)", out.Session.Title, out.Reason)
		}
		if !out.Saved {
			status = "campaign was deleted, chronicle discarded"
		}
		return doneMsg{status: status, reload: []tabID{tabTimeline}}
	}
}

func (m Model) regenerateCmd(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sessions.Regenerate(context.Background(), id)
		if err != nil {
			return doneMsg{err: err}
		}
		if !out.Saved {
			return doneMsg{status: "story kept: " + out.Reason, reload: []tabID{tabTimeline}}
		}
		return doneMsg{status: "story rewritten", reload: []tabID{tabTimeline}}
	}
}

func (m Model) exportCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sessions.Export(context.Background(), dir)
		if err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: fmt.Sprintf("exported %d files to %s", len(out.Files), dir)}
	}
}
