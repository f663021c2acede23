// Package store persists the three snapshot datasets (credentials,
// reservations, management) behind a whole-document read/replace contract.
package store

import (
	"context"
	"errors"

	"github.com/d-olmeda/dockside-tui/internal/models"
)

// ErrStoreUnavailable wraps any read or write failure of the backing store.
var ErrStoreUnavailable = errors.New("record store unavailable")

// RecordStore is the snapshot contract the core operates against. Read
// returns one consistent view of all three datasets; Write replaces the
// entire persisted document. Callers always supply the complete current
// snapshot, never a delta.
//
// The interface is the seam where a transactional backend with per-record
// writes and optimistic versioning would plug in.
type RecordStore interface {
	Read(ctx context.Context) (models.Snapshot, error)
	Write(ctx context.Context, snap models.Snapshot) error
}
