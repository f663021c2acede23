// Package arrival provides the arrival registration tab for the Dockside TUI.
package arrival

import (
	"fmt"
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

// keyMap defines the key bindings specific to the arrival tab.
type keyMap struct {
	Register key.Binding
	Now      key.Binding
	Escape   key.Binding
}

// defaultKeyMap returns the default key bindings for the arrival tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Register: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("enter", "register arrival"),
		),
		Now: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "arrive now"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model represents the arrival tab state.
type Model struct {
	state     *app.State
	commands  *app.Commands
	table     table.Model
	width     int
	height    int
	editing   bool
	orderID   string
	timeInput textinput.Model
	errText   string
	spinner   components.LoadingSpinner
	keys      keyMap

	// now is swappable in tests
	now func() time.Time
}

// New creates a new arrival model.
func New(state *app.State, commands *app.Commands) *Model {
	timeInput := textinput.New()
	timeInput.Placeholder = "HH:MM"
	timeInput.CharLimit = 8
	timeInput.Width = 12

	columns := []table.Column{
		{Title: "Order", Width: 14},
		{Title: "Provider", Width: 24},
		{Title: "Booked", Width: 10},
		{Title: "Bundles", Width: 8},
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
		state:     state,
		commands:  commands,
		table:     t,
		timeInput: timeInput,
		spinner:   components.NewSpinner("Loading reservations..."),
		keys:      defaultKeyMap(),
		now:       time.Now,
	}
}

// Init initializes the arrival tab.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// InputActive reports whether the time input currently owns the keyboard.
func (m *Model) InputActive() bool {
	return m.editing
}

// Update handles messages for the arrival tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle form mode
	if m.editing {
		return m.updateTimeForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Register):
			if res, ok := m.selectedReservation(); ok {
				m.openForm(res)
				return m, textinput.Blink
			}

		case key.Matches(msg, m.keys.Now):
			if res, ok := m.selectedReservation(); ok {
				return m, m.commands.RegisterArrival(res.OrderID, m.now())
			}

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			cmds = append(cmds, cmd)
		}

	case app.SnapshotLoadedMsg:
		m.updateTableData()

	case app.ArrivalRegisteredMsg:
		if msg.Error == nil {
			m.updateTableData()
		}
	}

	return m, tea.Batch(cmds...)
}

// openForm opens the time form prefilled from the booked slot, falling back
// to the current clock when the slot cannot be parsed.
func (m *Model) openForm(res models.Reservation) {
	m.editing = true
	m.orderID = res.OrderID
	m.errText = ""

	prefill := m.now().Format("15:04")
	if tod, ok := timeparse.Parse(res.BookedSlot); ok {
		prefill = fmt.Sprintf("%02d:%02d", tod.Hour, tod.Minute)
	}
	m.timeInput.SetValue(prefill)
	m.timeInput.CursorEnd()
	m.timeInput.Focus()
}

// updateTimeForm handles the arrival time form.
func (m *Model) updateTimeForm(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.closeForm()
			return m, nil

		case "enter":
			tod, ok := timeparse.Parse(m.timeInput.Value())
			if !ok {
				m.errText = "enter a time like 14:30"
				return m, nil
			}
			orderID := m.orderID
			arrival := tod.On(m.viewDate())
			m.closeForm()
			return m, m.commands.RegisterArrival(orderID, arrival)
		}

	case app.ArrivalRegisteredMsg:
		if msg.Error == nil {
			m.closeForm()
			m.updateTableData()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

func (m *Model) closeForm() {
	m.editing = false
	m.orderID = ""
	m.errText = ""
	m.timeInput.Blur()
}

// viewDate returns the day the pending list belongs to.
func (m *Model) viewDate() time.Time {
	view := m.state.GetDayView()
	if !view.Date.IsZero() {
		return view.Date
	}
	return m.now()
}

// selectedReservation returns the reservation under the table cursor.
func (m *Model) selectedReservation() (models.Reservation, bool) {
	pending := m.state.GetDayView().Pending
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(pending) {
		return models.Reservation{}, false
	}
	return pending[idx], true
}

// updateTableData updates the table with the current pending reservations.
func (m *Model) updateTableData() {
	pending := m.state.GetDayView().Pending
	rows := make([]table.Row, 0, len(pending))

	for _, res := range pending {
		booked := res.BookedSlot
		if tod, ok := timeparse.Parse(res.BookedSlot); ok {
			booked = fmt.Sprintf("%02d:%02d", tod.Hour, tod.Minute)
		}
		rows = append(rows, table.Row{
			res.OrderID,
			res.Provider,
			booked,
			strconv.Itoa(res.BundleCount),
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// SetSize sets the available size for the arrival tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-10, 3))

	providerWidth := width - 44
	if providerWidth < 16 {
		providerWidth = 16
	}
	if providerWidth > 40 {
		providerWidth = 40
	}

	columns := []table.Column{
		{Title: "Order", Width: 14},
		{Title: "Provider", Width: providerWidth},
		{Title: "Booked", Width: 10},
		{Title: "Bundles", Width: 8},
	}
	m.table.SetColumns(columns)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			m.keys.Escape,
		}
	}
	return []key.Binding{
		m.keys.Register,
		m.keys.Now,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Register, m.keys.Now},
		{m.keys.Escape},
	}
}
