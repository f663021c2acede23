// Package services orchestrates the record store, lifecycle transitions and
// aggregation for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/d-olmeda/dockside-tui/internal/config"
	"github.com/d-olmeda/dockside-tui/internal/lifecycle"
	"github.com/d-olmeda/dockside-tui/internal/logger"
	"github.com/d-olmeda/dockside-tui/internal/metrics"
	"github.com/d-olmeda/dockside-tui/internal/models"
	"github.com/d-olmeda/dockside-tui/internal/store"
)

type (
	// SnapshotChangedEvent is emitted whenever the day view may have
	// changed: after a registration, a manual refresh, or an external edit
	// of the store file.
	SnapshotChangedEvent struct {
		View DayView
	}

	// ErrorEvent is emitted when a background operation fails.
	ErrorEvent struct {
		Op    string
		Error error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SnapshotChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()           {}

// DayView is today's classified snapshot: which orders are still expected,
// which are on site, and which are done.
type DayView struct {
	Date      time.Time
	Pending   []models.Reservation
	Arrived   []models.ManagementRecord
	Completed []models.ManagementRecord
}

// DashboardData bundles everything the dashboard tab renders for one
// provider filter and look-back window.
type DashboardData struct {
	Provider  string
	WeeksBack int
	Providers []string
	Summary   models.PeriodSummary
	Weekly    []models.WeeklyAggregate
	Hourly    []models.HourlyAggregate
}

// Manager owns the store stack and applies lifecycle transitions with
// read-fresh, apply, write-back semantics.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	sqlite      *store.SQLiteStore
	cached      *store.CachedStore
	watcher     *store.Watcher
	subscribers []chan<- ServiceEvent
	now         func() time.Time
}

// NewManager opens the store at cfg.StorePath, wraps it with the snapshot
// cache, and starts watching the file for external edits.
func NewManager(cfg *config.Config) (*Manager, error) {
	sqlite, err := store.NewSQLiteStore(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	m := &Manager{
		cfg:    cfg,
		sqlite: sqlite,
		cached: store.NewCachedStore(sqlite, cfg.CacheTTL),
		now:    time.Now,
	}

	m.watcher, err = store.NewWatcher(cfg.StorePath, m.onStoreChanged)
	if err != nil {
		// The watcher is a convenience, not a requirement. Without it,
		// external edits show up after the cache TTL.
		logger.Warn("store watcher unavailable", "error", err)
	}

	return m, nil
}

// onStoreChanged reloads and rebroadcasts after the store file was modified
// outside this process.
func (m *Manager) onStoreChanged() {
	m.cached.Invalidate()

	view, err := m.SnapshotNow(context.Background())
	if err != nil {
		m.broadcast(ErrorEvent{Op: "watch", Error: err})
		return
	}
	m.broadcast(SnapshotChangedEvent{View: view})
}

// SnapshotNow reads the current snapshot and classifies today's orders into
// pending, arrived and completed.
func (m *Manager) SnapshotNow(ctx context.Context) (DayView, error) {
	snap, err := m.cached.Read(ctx)
	if err != nil {
		return DayView{}, err
	}
	return m.classify(snap), nil
}

func (m *Manager) classify(snap models.Snapshot) DayView {
	today := m.now()
	view := DayView{Date: today}

	for _, id := range lifecycle.Pending(snap.Reservations, snap.Management, today) {
		if i := snap.FindReservation(id); i >= 0 {
			view.Pending = append(view.Pending, snap.Reservations[i])
		}
	}
	for _, id := range lifecycle.ArrivedNotCompleted(snap.Management, today) {
		if i := snap.FindRecord(id); i >= 0 {
			view.Arrived = append(view.Arrived, snap.Management[i].Clone())
		}
	}
	for _, id := range lifecycle.Completed(snap.Management, today) {
		if i := snap.FindRecord(id); i >= 0 {
			view.Completed = append(view.Completed, snap.Management[i].Clone())
		}
	}
	return view
}

// RegisterArrival marks orderID as arrived at the given time. The snapshot
// is re-read from the backing store first so the transition applies to fresh
// data, and the whole document is written back afterwards.
func (m *Manager) RegisterArrival(ctx context.Context, orderID string, arrival time.Time) (models.ManagementRecord, error) {
	m.cached.Invalidate()

	snap, err := m.cached.Read(ctx)
	if err != nil {
		return models.ManagementRecord{}, err
	}

	i := snap.FindReservation(orderID)
	if i < 0 {
		return models.ManagementRecord{}, fmt.Errorf("%w: no reservation for %s", lifecycle.ErrInvalidOrder, orderID)
	}

	rec, err := lifecycle.RegisterArrival(&snap, snap.Reservations[i], arrival)
	if err != nil {
		return models.ManagementRecord{}, err
	}

	if err := m.cached.Write(ctx, snap); err != nil {
		return models.ManagementRecord{}, err
	}

	m.notifyLateArrival(rec)
	m.broadcast(SnapshotChangedEvent{View: m.classify(snap)})
	logger.Info("arrival registered", "order", orderID, "delay_minutes", intOrZero(rec.DelayMinutes))

	return rec, nil
}

// RegisterService records the service window for an arrived order and
// completes it. Times are validated against each other and the stored
// arrival before anything is written.
func (m *Manager) RegisterService(ctx context.Context, orderID string, start, end time.Time) (models.ManagementRecord, error) {
	m.cached.Invalidate()

	snap, err := m.cached.Read(ctx)
	if err != nil {
		return models.ManagementRecord{}, err
	}

	rec, err := lifecycle.RegisterService(&snap, orderID, start, end)
	if err != nil {
		return models.ManagementRecord{}, err
	}

	if err := m.cached.Write(ctx, snap); err != nil {
		return models.ManagementRecord{}, err
	}

	m.broadcast(SnapshotChangedEvent{View: m.classify(snap)})
	logger.Info("service registered", "order", orderID, "total_minutes", intOrZero(rec.TotalMinutes))

	return rec, nil
}

// DashboardData aggregates the completed records of the last weeksBack full
// weeks. provider filters to a single supplier; empty means all.
func (m *Manager) DashboardData(ctx context.Context, weeksBack int, provider string) (DashboardData, error) {
	if weeksBack <= 0 {
		weeksBack = m.cfg.WeeksBack
	}

	snap, err := m.cached.Read(ctx)
	if err != nil {
		return DashboardData{}, err
	}

	window := metrics.CompletedWeeks(snap.Management, weeksBack, m.now())

	return DashboardData{
		Provider:  provider,
		WeeksBack: weeksBack,
		Providers: metrics.Providers(snap.Management),
		Summary:   metrics.Summary(window, provider),
		Weekly:    metrics.AggregateByWeek(window, provider),
		Hourly:    metrics.AggregateByHour(window, provider),
	}, nil
}

// Refresh drops the cache, re-reads, and broadcasts the fresh day view.
func (m *Manager) Refresh(ctx context.Context) (DayView, error) {
	m.cached.Invalidate()

	view, err := m.SnapshotNow(ctx)
	if err != nil {
		return DayView{}, err
	}
	m.broadcast(SnapshotChangedEvent{View: view})
	return view, nil
}

// notifyLateArrival raises a desktop notification when the arrival delay
// crosses the configured threshold.
func (m *Manager) notifyLateArrival(rec models.ManagementRecord) {
	if rec.DelayMinutes == nil || m.cfg.DelayAlertMinutes <= 0 {
		return
	}
	if *rec.DelayMinutes <= m.cfg.DelayAlertMinutes {
		return
	}

	title := fmt.Sprintf("Late arrival: %s", rec.OrderID)
	body := fmt.Sprintf("%s arrived %d minutes after the booked slot", rec.Provider, *rec.DelayMinutes)
	_ = beeep.Notify(title, body, "")
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Store exposes the cached store for direct snapshot access.
func (m *Manager) Store() store.RecordStore {
	return m.cached
}

// Close stops the watcher and closes the store.
func (m *Manager) Close() error {
	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.sqlite.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
