package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/d-olmeda/dockside-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that loads all initial data.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadSnapshotCmd(mgr),
		loadDashboardCmd(mgr, 0, ""),
	)
}

// loadSnapshotCmd returns a command that loads today's classified snapshot.
func loadSnapshotCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		view, err := mgr.SnapshotNow(context.Background())
		return SnapshotLoadedMsg{View: view, Error: err}
	}
}

// loadDashboardCmd returns a command that loads aggregated dashboard data.
func loadDashboardCmd(mgr *services.Manager, weeksBack int, provider string) tea.Cmd {
	return func() tea.Msg {
		data, err := mgr.DashboardData(context.Background(), weeksBack, provider)
		return DashboardLoadedMsg{Data: data, Error: err}
	}
}

// registerArrivalCmd returns a command that registers an arrival.
func registerArrivalCmd(mgr *services.Manager, orderID string, arrival time.Time) tea.Cmd {
	return func() tea.Msg {
		rec, err := mgr.RegisterArrival(context.Background(), orderID, arrival)
		return ArrivalRegisteredMsg{OrderID: orderID, Record: rec, Error: err}
	}
}

// registerServiceCmd returns a command that registers a service window.
func registerServiceCmd(mgr *services.Manager, orderID string, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		rec, err := mgr.RegisterService(context.Background(), orderID, start, end)
		return ServiceRegisteredMsg{OrderID: orderID, Record: rec, Error: err}
	}
}

// refreshCmd returns a command that drops the cache and reloads the snapshot.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		view, err := mgr.Refresh(context.Background())
		return SnapshotLoadedMsg{View: view, Error: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service
// event, wrapping it in a ServiceEventMsg so the shell can re-arm the wait.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	wait := services.WaitForEvent(ch)
	return func() tea.Msg {
		event, ok := wait().(services.ServiceEvent)
		if !ok || event == nil {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// LoadInitialData returns a command that loads all initial data.
func (c *Commands) LoadInitialData() tea.Cmd {
	return loadInitialData(c.manager)
}

// LoadSnapshot returns a command that loads today's snapshot.
func (c *Commands) LoadSnapshot() tea.Cmd {
	return loadSnapshotCmd(c.manager)
}

// LoadDashboard returns a command that loads dashboard data.
func (c *Commands) LoadDashboard(weeksBack int, provider string) tea.Cmd {
	return loadDashboardCmd(c.manager, weeksBack, provider)
}

// RegisterArrival returns a command that registers an arrival.
func (c *Commands) RegisterArrival(orderID string, arrival time.Time) tea.Cmd {
	return registerArrivalCmd(c.manager, orderID, arrival)
}

// RegisterService returns a command that registers a service window.
func (c *Commands) RegisterService(orderID string, start, end time.Time) tea.Cmd {
	return registerServiceCmd(c.manager, orderID, start, end)
}

// Refresh returns a command that drops the cache and reloads.
func (c *Commands) Refresh() tea.Cmd {
	return refreshCmd(c.manager)
}

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd {
	return subscribeToServicesCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}
