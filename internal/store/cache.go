package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/d-olmeda/dockside-tui/internal/logger"
	"github.com/d-olmeda/dockside-tui/internal/models"
)

// DefaultCacheTTL bounds how stale a cached snapshot may get before the next
// Read goes back to the inner store.
const DefaultCacheTTL = 5 * time.Minute

// CachedStore wraps a RecordStore with a TTL cache over the whole snapshot.
// Write goes straight through and invalidates, so the caller's own writes
// are always visible on the next Read.
type CachedStore struct {
	inner RecordStore
	ttl   time.Duration

	mu        sync.Mutex
	snap      *models.Snapshot
	fetchedAt time.Time
}

// NewCachedStore wraps inner with a cache. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewCachedStore(inner RecordStore, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{inner: inner, ttl: ttl}
}

// Read serves the cached snapshot while it is fresh, otherwise reloads from
// the inner store. Callers get a clone, so mutating the result never leaks
// into the cache.
func (c *CachedStore) Read(ctx context.Context) (models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.snap.Clone(), nil
	}

	snap, err := c.inner.Read(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	cached := snap.Clone()
	c.snap = &cached
	c.fetchedAt = time.Now()
	return snap, nil
}

// Write replaces the persisted document and drops the cache.
func (c *CachedStore) Write(ctx context.Context, snap models.Snapshot) error {
	if err := c.inner.Write(ctx, snap); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Invalidate drops the cached snapshot so the next Read hits the inner store.
func (c *CachedStore) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

// Watcher invalidates a CachedStore when the backing database file changes
// on disk, so edits from another process show up without waiting out the TTL.
type Watcher struct {
	watcher       *fsnotify.Watcher
	path          string
	onChange      func()
	debounceTimer *time.Timer
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewWatcher watches the directory containing path and calls onChange
// (debounced) whenever the file is written or recreated.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory (to catch file creation/deletion)
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     path,
		onChange: onChange,
		stopChan: make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

func (w *Watcher) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about the store file itself. SQLite WAL mode also
			// touches the -wal sidecar on write, so match on prefix.
			base := filepath.Base(event.Name)
			want := filepath.Base(w.path)
			if base != want && base != want+"-wal" {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce rapid changes
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.onChange)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("store watcher error", "error", err)

		case <-w.stopChan:
			return
		}
	}
}

// Close stops the watch loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
	})
	return w.watcher.Close()
}
