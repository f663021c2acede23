package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/d-olmeda/dockside-tui/internal/app"
	"github.com/d-olmeda/dockside-tui/internal/models"
	"github.com/d-olmeda/dockside-tui/internal/services"
)

func testState() *app.State {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	arrival := day.Add(9*time.Hour + 37*time.Minute)
	delay := 7

	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetDayView(services.DayView{
		Date: day,
		Arrived: []models.ManagementRecord{
			{
				OrderID:      "A-100",
				Provider:     "Northline",
				ArrivalTime:  &arrival,
				DelayMinutes: &delay,
			},
		},
	})
	return state
}

func TestNew(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	if m.Init() == nil {
		t.Error("Init returned nil")
	}
}

func TestModel_View(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	m.SetSize(100, 30)
	m.updateTableData()

	view := m.View()
	if !strings.Contains(view, "A-100") {
		t.Error("View should list the arrived order")
	}
	if !strings.Contains(view, "09:37") {
		t.Error("View should show the arrival clock")
	}
	if !strings.Contains(view, "+7m") {
		t.Error("View should show the signed delay")
	}
}

func TestModel_EmptyState(t *testing.T) {
	state := app.NewState()
	state.SetLoading("initial", false)
	state.SetDayView(services.DayView{Date: time.Now()})

	m := New(state, app.NewCommands(nil))
	m.SetSize(100, 30)

	view := m.View()
	if !strings.Contains(view, "No Arrivals Awaiting Service") {
		t.Error("View should show the empty state")
	}
}

func TestModel_OpenFormPrefillsArrival(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	m.updateTableData()

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.editing {
		t.Fatal("enter should open the service form")
	}
	if !m.InputActive() {
		t.Error("InputActive should be true while editing")
	}
	if got := m.startInput.Value(); got != "09:37" {
		t.Errorf("start prefill = %q, want 09:37", got)
	}
	if m.focusedField != fieldStart {
		t.Error("form should start on the start field")
	}
}

func TestModel_FormFieldCycle(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	m.updateTableData()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedField != fieldEnd {
		t.Errorf("after tab focusedField = %d, want fieldEnd", m.focusedField)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedField != fieldStart {
		t.Errorf("after shift+tab focusedField = %d, want fieldStart", m.focusedField)
	}
}

func TestModel_SubmitValidation(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"bad start", "soon", "11:00"},
		{"bad end", "10:00", "later"},
		{"end before start", "11:00", "10:00"},
		{"end equals start", "10:00", "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(testState(), app.NewCommands(nil))
			m.updateTableData()
			m.Update(tea.KeyMsg{Type: tea.KeyEnter})

			m.startInput.SetValue(tt.start)
			m.endInput.SetValue(tt.end)
			m.focusedField = fieldSubmit

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

			if cmd != nil {
				t.Error("invalid form should not produce a command")
			}
			if !m.editing {
				t.Error("form should stay open on invalid input")
			}
			if m.errText == "" {
				t.Error("invalid input should set an error message")
			}
		})
	}
}

func TestModel_SubmitProducesCommand(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	m.updateTableData()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.startInput.SetValue("10:00")
	m.endInput.SetValue("10:45")
	m.focusedField = fieldSubmit

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Error("valid form should produce a register command")
	}
	if m.editing {
		t.Error("form should close on submit")
	}
}

func TestModel_RegistrationErrorKeepsForm(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	m.updateTableData()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m.Update(app.ServiceRegisteredMsg{
		OrderID: "A-100",
		Error:   errors.New("service start is earlier than arrival"),
	})

	if !m.editing {
		t.Error("form should stay open when registration fails")
	}
	if m.errText == "" {
		t.Error("registration failure should surface in the form")
	}
}

func TestModel_EscCancels(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	m.updateTableData()
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.editing {
		t.Error("esc should close the form")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(testState(), app.NewCommands(nil))
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
