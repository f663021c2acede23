package app

import (
	"time"

	"github.com/d-olmeda/dockside-tui/internal/models"
	"github.com/d-olmeda/dockside-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SnapshotLoadedMsg contains today's classified snapshot.
type SnapshotLoadedMsg struct {
	View  services.DayView
	Error error
}

// DashboardLoadedMsg contains aggregated dashboard data.
type DashboardLoadedMsg struct {
	Data  services.DashboardData
	Error error
}

// ArrivalRegisteredMsg contains the result of an arrival registration.
type ArrivalRegisteredMsg struct {
	OrderID string
	Record  models.ManagementRecord
	Error   error
}

// ServiceRegisteredMsg contains the result of a service registration.
type ServiceRegisteredMsg struct {
	OrderID string
	Record  models.ManagementRecord
	Error   error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "snapshot", "dashboard"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
