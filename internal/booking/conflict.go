package booking

import (
	"context"
	"fmt"

	"github.com/iliyamo/room-reservation/internal/timerange"
)

// ConflictChecker decides booking feasibility for a candidate interval
// against the reservations a room already holds.
type ConflictChecker struct {
	store ReservationStore
}

// NewConflictChecker returns a checker reading through the given store.
func NewConflictChecker(store ReservationStore) *ConflictChecker {
	if store == nil {
		panic("nil store passed to NewConflictChecker")
	}
	return &ConflictChecker{store: store}
}

// HasConflict reports whether candidate overlaps any existing reservation on
// the room, per the half-open interval rule. excludeID names a reservation
// to skip (the one being updated); pass 0 for creates.
//
// The candidate is validated before any I/O so malformed input fails fast.
// The room's reservations are fetched fresh from the store on every call;
// this read gates a write and must never come from a cache.
func (c *ConflictChecker) HasConflict(ctx context.Context, roomID uint64, candidate timerange.Range, excludeID uint64) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}
	existing, err := c.store.ListByRoom(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("%w: listing room %d: %v", ErrStoreUnavailable, roomID, err)
	}
	for i := range existing {
		if existing[i].ID == excludeID {
			continue
		}
		if candidate.Overlaps(existing[i].Range()) {
			return true, nil
		}
	}
	return false, nil
}
