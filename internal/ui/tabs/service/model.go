// Package service provides the service window registration tab for the
// Dockside TUI.
package service

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/d-olmeda/dockside-tui/internal/app"
	"github.com/d-olmeda/dockside-tui/internal/models"
	"github.com/d-olmeda/dockside-tui/internal/timeparse"
	"github.com/d-olmeda/dockside-tui/internal/ui/components"
	"github.com/d-olmeda/dockside-tui/internal/ui/styles"
)

// formField represents which field is currently focused in the service form.
type formField int

const (
	fieldStart formField = iota
	fieldEnd
	fieldSubmit
	fieldCancel
)

const fieldCount = 4

// keyMap defines the key bindings specific to the service tab.
type keyMap struct {
	Complete key.Binding
	Escape   key.Binding
}

// defaultKeyMap returns the default key bindings for the service tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Complete: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "register service"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model represents the service tab state.
type Model struct {
	state        *app.State
	commands     *app.Commands
	table        table.Model
	width        int
	height       int
	editing      bool
	orderID      string
	focusedField formField
	startInput   textinput.Model
	endInput     textinput.Model
	errText      string
	spinner      components.LoadingSpinner
	keys         keyMap

	now func() time.Time
}

// New creates a new service model.
func New(state *app.State, commands *app.Commands) *Model {
	startInput := textinput.New()
	startInput.Placeholder = "HH:MM"
	startInput.CharLimit = 8
	startInput.Width = 12

	endInput := textinput.New()
	endInput.Placeholder = "HH:MM"
	endInput.CharLimit = 8
	endInput.Width = 12

	columns := []table.Column{
		{Title: "Order", Width: 14},
		{Title: "Provider", Width: 24},
		{Title: "Arrived", Width: 10},
		{Title: "Delay", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:      state,
		commands:   commands,
		table:      t,
		startInput: startInput,
		endInput:   endInput,
		spinner:    components.NewSpinner("Loading arrivals..."),
		keys:       defaultKeyMap(),
		now:        time.Now,
	}
}

// Init initializes the service tab.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// InputActive reports whether a form input currently owns the keyboard.
func (m *Model) InputActive() bool {
	return m.editing
}

// Update handles messages for the service tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle form mode
	if m.editing {
		return m.updateServiceForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Complete):
			if rec, ok := m.selectedRecord(); ok {
				m.openForm(rec)
				return m, textinput.Blink
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case app.SnapshotLoadedMsg:
		m.updateTableData()

	case app.ServiceRegisteredMsg:
		if msg.Error == nil {
			m.updateTableData()
		}
	}

	return m, tea.Batch(cmds...)
}

// openForm opens the service window form, prefilling the start field from
// the arrival time.
func (m *Model) openForm(rec models.ManagementRecord) {
	m.editing = true
	m.orderID = rec.OrderID
	m.errText = ""
	m.focusedField = fieldStart

	start := m.now().Format("15:04")
	if rec.ArrivalTime != nil {
		start = rec.ArrivalTime.Format("15:04")
	}
	m.startInput.SetValue(start)
	m.startInput.CursorEnd()
	m.endInput.SetValue(m.now().Format("15:04"))
	m.endInput.CursorEnd()
	m.updateFormFocus()
}

// updateServiceForm handles the service window form.
func (m *Model) updateServiceForm(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.closeForm()
			return m, nil

		case "tab", "down":
			m.focusedField = (m.focusedField + 1) % fieldCount
			m.updateFormFocus()
			return m, textinput.Blink

		case "shift+tab", "up":
			m.focusedField = (m.focusedField - 1 + fieldCount) % fieldCount
			m.updateFormFocus()
			return m, textinput.Blink

		case "enter":
			switch m.focusedField {
			case fieldSubmit:
				return m.submit()
			case fieldCancel:
				m.closeForm()
				return m, nil
			case fieldEnd:
				return m.submit()
			default:
				m.focusedField = (m.focusedField + 1) % fieldCount
				m.updateFormFocus()
				return m, textinput.Blink
			}
		}

	case app.ServiceRegisteredMsg:
		if msg.Error == nil {
			m.closeForm()
			m.updateTableData()
		} else {
			m.errText = msg.Error.Error()
		}
		return m, nil
	}

	// Update the focused input
	var cmd tea.Cmd
	switch m.focusedField {
	case fieldStart:
		m.startInput, cmd = m.startInput.Update(msg)
		cmds = append(cmds, cmd)
	case fieldEnd:
		m.endInput, cmd = m.endInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit validates both clock fields and issues the register command. The
// form stays open on bad input so the operator can correct it.
func (m *Model) submit() (app.Tab, tea.Cmd) {
	startTod, ok := timeparse.Parse(m.startInput.Value())
	if !ok {
		m.errText = "start must be a time like 10:30"
		return m, nil
	}
	endTod, ok := timeparse.Parse(m.endInput.Value())
	if !ok {
		m.errText = "end must be a time like 11:00"
		return m, nil
	}

	day := m.viewDate()
	start := startTod.On(day)
	end := endTod.On(day)
	if !end.After(start) {
		m.errText = "end must be after start"
		return m, nil
	}

	orderID := m.orderID
	m.closeForm()
	return m, m.commands.RegisterService(orderID, start, end)
}

func (m *Model) closeForm() {
	m.editing = false
	m.orderID = ""
	m.errText = ""
	m.startInput.Blur()
	m.endInput.Blur()
}

// updateFormFocus updates which form field is focused.
func (m *Model) updateFormFocus() {
	m.startInput.Blur()
	m.endInput.Blur()

	switch m.focusedField {
	case fieldStart:
		m.startInput.Focus()
	case fieldEnd:
		m.endInput.Focus()
	}
}

// viewDate returns the day the arrived list belongs to.
func (m *Model) viewDate() time.Time {
	view := m.state.GetDayView()
	if !view.Date.IsZero() {
		return view.Date
	}
	return m.now()
}

// selectedRecord returns the arrived record under the table cursor.
func (m *Model) selectedRecord() (models.ManagementRecord, bool) {
	arrived := m.state.GetDayView().Arrived
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(arrived) {
		return models.ManagementRecord{}, false
	}
	return arrived[idx], true
}

// updateTableData updates the table with records awaiting service.
func (m *Model) updateTableData() {
	arrived := m.state.GetDayView().Arrived
	rows := make([]table.Row, 0, len(arrived))

	for _, rec := range arrived {
		arrivedAt := "-"
		if rec.ArrivalTime != nil {
			arrivedAt = rec.ArrivalTime.Format("15:04")
		}
		delay := "-"
		if rec.DelayMinutes != nil {
			delay = formatDelay(*rec.DelayMinutes)
		}
		rows = append(rows, table.Row{
			rec.OrderID,
			rec.Provider,
			arrivedAt,
			delay,
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// formatDelay renders a signed delay in minutes.
func formatDelay(minutes int) string {
	if minutes > 0 {
		return "+" + strconv.Itoa(minutes) + "m"
	}
	return strconv.Itoa(minutes) + "m"
}

// SetSize sets the available size for the service tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-10, 3))

	providerWidth := width - 46
	if providerWidth < 16 {
		providerWidth = 16
	}
	if providerWidth > 40 {
		providerWidth = 40
	}

	columns := []table.Column{
		{Title: "Order", Width: 14},
		{Title: "Provider", Width: providerWidth},
		{Title: "Arrived", Width: 10},
		{Title: "Delay", Width: 10},
	}
	m.table.SetColumns(columns)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			m.keys.Escape,
		}
	}
	return []key.Binding{
		m.keys.Complete,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Complete},
		{m.keys.Escape},
	}
}
