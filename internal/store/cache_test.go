package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

type countingStore struct {
	snap   models.Snapshot
	reads  int
	writes int
	err    error
}

func (c *countingStore) Read(ctx context.Context) (models.Snapshot, error) {
	c.reads++
	if c.err != nil {
		return models.Snapshot{}, c.err
	}
	return c.snap.Clone(), nil
}

func (c *countingStore) Write(ctx context.Context, snap models.Snapshot) error {
	c.writes++
	if c.err != nil {
		return c.err
	}
	c.snap = snap.Clone()
	return nil
}

func TestCachedStoreServesFromCache(t *testing.T) {
	inner := &countingStore{snap: models.Snapshot{
		Reservations: []models.Reservation{{OrderID: "PO-1"}},
	}}
	cached := NewCachedStore(inner, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		snap, err := cached.Read(ctx)
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		if len(snap.Reservations) != 1 {
			t.Fatalf("Read %d: %+v", i, snap)
		}
	}

	if inner.reads != 1 {
		t.Errorf("inner reads = %d, want 1", inner.reads)
	}
}

func TestCachedStoreCallerMutationDoesNotLeak(t *testing.T) {
	inner := &countingStore{snap: models.Snapshot{
		Reservations: []models.Reservation{{OrderID: "PO-1"}},
	}}
	cached := NewCachedStore(inner, time.Hour)
	ctx := context.Background()

	first, err := cached.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	first.Reservations[0].OrderID = "mutated"

	second, err := cached.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if second.Reservations[0].OrderID != "PO-1" {
		t.Errorf("cache saw caller mutation: %q", second.Reservations[0].OrderID)
	}
}

func TestCachedStoreWriteInvalidates(t *testing.T) {
	inner := &countingStore{}
	cached := NewCachedStore(inner, time.Hour)
	ctx := context.Background()

	if _, err := cached.Read(ctx); err != nil {
		t.Fatalf("Read: %v", err)
	}

	next := models.Snapshot{Reservations: []models.Reservation{{OrderID: "PO-9"}}}
	if err := cached.Write(ctx, next); err != nil {
		t.Fatalf("Write: %v", err)
	}

	snap, err := cached.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(snap.Reservations) != 1 || snap.Reservations[0].OrderID != "PO-9" {
		t.Errorf("stale snapshot after write: %+v", snap)
	}
	if inner.reads != 2 {
		t.Errorf("inner reads = %d, want 2", inner.reads)
	}
}

func TestCachedStoreInvalidate(t *testing.T) {
	inner := &countingStore{}
	cached := NewCachedStore(inner, time.Hour)
	ctx := context.Background()

	if _, err := cached.Read(ctx); err != nil {
		t.Fatalf("Read: %v", err)
	}
	cached.Invalidate()
	if _, err := cached.Read(ctx); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if inner.reads != 2 {
		t.Errorf("inner reads = %d, want 2", inner.reads)
	}
}

func TestCachedStoreExpiry(t *testing.T) {
	inner := &countingStore{}
	cached := NewCachedStore(inner, time.Millisecond)
	ctx := context.Background()

	if _, err := cached.Read(ctx); err != nil {
		t.Fatalf("Read: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := cached.Read(ctx); err != nil {
		t.Fatalf("Read: %v", err)
	}

	if inner.reads != 2 {
		t.Errorf("inner reads = %d, want 2", inner.reads)
	}
}

func TestCachedStorePropagatesErrors(t *testing.T) {
	inner := &countingStore{err: ErrStoreUnavailable}
	cached := NewCachedStore(inner, time.Hour)
	ctx := context.Background()

	if _, err := cached.Read(ctx); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Read = %v, want ErrStoreUnavailable", err)
	}
	if err := cached.Write(ctx, models.Snapshot{}); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Write = %v, want ErrStoreUnavailable", err)
	}
}
