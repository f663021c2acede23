package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/d-olmeda/dockside-tui/internal/config"
	"github.com/d-olmeda/dockside-tui/internal/lifecycle"
	"github.com/d-olmeda/dockside-tui/internal/models"
	"github.com/d-olmeda/dockside-tui/internal/services"
	"github.com/d-olmeda/dockside-tui/internal/store"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabArrival {
		t.Error("Default tab should be Arrival")
	}
	if len(model.tabs) != 3 {
		t.Errorf("Should have 3 tabs placeholder, got %d", len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	cmd := model.Init()
	if cmd == nil {
		t.Error("Init returned nil command")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	msg := tea.WindowSizeMsg{Width: 100, Height: 50}

	newModel, _ := model.Update(msg)

	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}

	if m.width != 100 {
		t.Errorf("Width = %d, want 100", m.width)
	}
	if m.height != 50 {
		t.Errorf("Height = %d, want 50", m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_Update_TabSwitch(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 100
	model.height = 50

	msg := TabSwitchMsg{Tab: TabService}
	newModel, _ := model.Update(msg)
	m := newModel.(*Model)

	if m.activeTab != TabService {
		t.Errorf("ActiveTab = %v, want Service", m.activeTab)
	}

	// Key binding '3'
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if model.activeTab != TabDashboard {
		t.Errorf("ActiveTab = %v, want Dashboard", model.activeTab)
	}

	// tab cycles forward and wraps
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabArrival {
		t.Errorf("ActiveTab = %v, want Arrival after wrap", model.activeTab)
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	msg := TickMsg{Time: time.Now()}

	_, cmd := model.Update(msg)
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	// Not ready
	view := model.View()
	if !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	// Ready
	model.ready = true
	model.width = 80
	model.height = 24

	view = model.View()
	if !strings.Contains(view, "Arrival") {
		t.Error("View should show Arrival tab")
	}
	// Placeholder since tabs are nil
	if !strings.Contains(view, "not yet implemented") {
		t.Error("View should show placeholder text")
	}
}

func TestModel_Help(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 80
	model.height = 24

	model.Update(ToggleHelpMsg{})
	if !model.showHelp {
		t.Error("showHelp should be true")
	}

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	msg := AddNotificationMsg{
		Message:  "Test Note",
		Type:     NotificationInfo,
		Duration: 0,
	}

	model.Update(msg)

	notifs := model.state.GetNotifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}

	model.ready = true
	model.width = 80
	model.height = 24
	view := model.View()
	if !strings.Contains(view, "Test Note") {
		t.Error("View should show notification")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	view := services.DayView{
		Date:    day,
		Pending: []models.Reservation{{OrderID: "A-100"}},
	}
	model.handleServiceEvent(services.SnapshotChangedEvent{View: view})

	if len(model.state.GetDayView().Pending) != 1 {
		t.Error("Snapshot event should update the day view")
	}

	errEvent := services.ErrorEvent{Op: "watch", Error: errors.New("boom")}
	cmd := model.handleServiceEvent(errEvent)
	if cmd == nil {
		t.Error("Error event should trigger notification command")
	}
}

func TestModel_Update_Messages(t *testing.T) {
	model := NewModel(nil)

	model.Update(StartLoadingMsg{Resource: "snapshot"})
	if !model.state.Loading.Snapshot {
		t.Error("Loading.Snapshot should be true")
	}

	model.Update(StopLoadingMsg{Resource: "snapshot"})
	if model.state.Loading.Snapshot {
		t.Error("Loading.Snapshot should be false")
	}

	// Snapshot result clears initial loading and stores the view
	view := services.DayView{
		Date:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local),
		Pending: []models.Reservation{{OrderID: "A-100"}},
	}
	model.Update(SnapshotLoadedMsg{View: view})
	if model.state.Loading.Initial {
		t.Error("Initial loading should be false")
	}
	if len(model.state.GetDayView().Pending) != 1 {
		t.Error("Day view should be stored")
	}

	// Dashboard result
	model.Update(DashboardLoadedMsg{Data: services.DashboardData{WeeksBack: 4}})
	if model.state.GetDashboard().WeeksBack != 4 {
		t.Error("Dashboard data should be stored")
	}

	// Notification plumbing
	model.Update(AddNotificationMsg{Message: "test", Type: NotificationInfo})
	model.Update(RemoveNotificationMsg{ID: "nonexistent"})
	model.Update(ClearExpiredNotificationsMsg{})
}

func TestModel_ServiceRegisteredKeepsDashboardFilter(t *testing.T) {
	mgr, err := services.NewManager(&config.Config{
		StorePath: filepath.Join(t.TempDir(), "store.db"),
		CacheTTL:  time.Hour,
		WeeksBack: 4,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	model := NewModel(mgr)
	model.state.SetDashboard(services.DashboardData{Provider: "Northline", WeeksBack: 12})

	total := 42
	cmds := model.handleServiceRegistered(ServiceRegisteredMsg{
		OrderID: "A-100",
		Record:  models.ManagementRecord{OrderID: "A-100", TotalMinutes: &total},
	})

	var loaded *DashboardLoadedMsg
	for _, cmd := range cmds {
		if msg, ok := cmd().(DashboardLoadedMsg); ok {
			loaded = &msg
			break
		}
	}
	if loaded == nil {
		t.Fatal("Expected a dashboard reload command")
	}
	if loaded.Error != nil {
		t.Fatalf("Dashboard reload failed: %v", loaded.Error)
	}
	if loaded.Data.Provider != "Northline" {
		t.Errorf("Provider = %q, want Northline", loaded.Data.Provider)
	}
	if loaded.Data.WeeksBack != 12 {
		t.Errorf("WeeksBack = %d, want 12", loaded.Data.WeeksBack)
	}
}

func TestModel_ArrivalRegistered(t *testing.T) {
	model := NewModel(nil)

	delay := 7
	cmds := model.handleArrivalRegistered(ArrivalRegisteredMsg{
		OrderID: "A-100",
		Record:  models.ManagementRecord{OrderID: "A-100", DelayMinutes: &delay},
	})
	if len(cmds) == 0 {
		t.Fatal("successful arrival should produce commands")
	}

	msg := cmds[0]()
	addMsg, ok := msg.(AddNotificationMsg)
	if !ok {
		t.Fatalf("Expected AddNotificationMsg, got %T", msg)
	}
	if addMsg.Type != NotificationWarning {
		t.Error("late arrival should warn")
	}
	if !strings.Contains(addMsg.Message, "7 min late") {
		t.Errorf("message = %q, want the delay named", addMsg.Message)
	}

	// Failure path surfaces a friendly error
	cmds = model.handleArrivalRegistered(ArrivalRegisteredMsg{
		OrderID: "A-100",
		Error:   lifecycle.ErrDuplicateTransition,
	})
	msg = cmds[0]()
	addMsg = msg.(AddNotificationMsg)
	if addMsg.Type != NotificationError {
		t.Error("failed arrival should produce an error notification")
	}
	if !strings.Contains(addMsg.Message, "already completed") {
		t.Errorf("message = %q, want the duplicate explained", addMsg.Message)
	}
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{lifecycle.ErrDuplicateTransition, "already completed"},
		{lifecycle.ErrNotArrived, "not been registered"},
		{lifecycle.ErrServiceBeforeArrival, "earlier than the arrival"},
		{lifecycle.ErrInvalidOrder, "Invalid order"},
		{store.ErrStoreUnavailable, "store unavailable"},
		{errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		if got := friendlyError(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("friendlyError(%v) = %q, want substring %q", tt.err, got, tt.want)
		}
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	if TabArrival.String() != "Arrival" {
		t.Error("TabArrival.String() mismatch")
	}
	if TabService.String() != "Service" {
		t.Error("TabService.String() mismatch")
	}
	if TabDashboard.String() != "Dashboard" {
		t.Error("TabDashboard.String() mismatch")
	}
	if TabID(999).String() != "Unknown" {
		t.Error("Unknown tab string mismatch")
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
