// Package dashboard provides the timing analytics tab for the Dockside TUI.
package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/d-olmeda/dockside-tui/internal/app"
	"github.com/d-olmeda/dockside-tui/internal/ui/components"
)

// weekChoices are the selectable aggregation windows, in completed weeks.
var weekChoices = []int{1, 2, 4, 12, 24}

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	NextProvider key.Binding
	NextWindow   key.Binding
	Refresh      key.Binding
}

// defaultKeyMap returns the default key bindings for the dashboard tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NextProvider: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle provider"),
		),
		NextWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "cycle weeks"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// Model represents the dashboard tab state.
type Model struct {
	state    *app.State
	commands *app.Commands
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int

	// current filter selection; zero values mean "all providers" and the
	// configured default window
	provider  string
	weeksIdx  int
	weeksBack int
}

// New creates a new dashboard model.
func New(state *app.State, commands *app.Commands) *Model {
	return &Model{
		state:    state,
		commands: commands,
		spinner:  components.NewSpinner("Aggregating timings..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		weeksIdx: 2, // 4 weeks
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case app.DashboardLoadedMsg:
		if msg.Error == nil {
			m.provider = msg.Data.Provider
			m.weeksBack = msg.Data.WeeksBack
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextProvider):
		m.provider = m.nextProvider()
		return m.reload()

	case key.Matches(msg, m.keys.NextWindow):
		m.weeksIdx = (m.weeksIdx + 1) % len(weekChoices)
		return m.reload()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
}

// nextProvider cycles all -> first -> ... -> last -> all.
func (m *Model) nextProvider() string {
	providers := m.state.GetDashboard().Providers
	if len(providers) == 0 {
		return ""
	}

	if m.provider == "" {
		return providers[0]
	}
	for i, p := range providers {
		if p == m.provider {
			if i+1 < len(providers) {
				return providers[i+1]
			}
			return ""
		}
	}
	return ""
}

func (m *Model) reload() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return app.StartLoadingMsg{Resource: "dashboard"} },
		m.commands.LoadDashboard(weekChoices[m.weeksIdx], m.provider),
	)
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextProvider,
		m.keys.NextWindow,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextProvider, m.keys.NextWindow},
		{m.keys.Refresh},
	}
}
