// Package booking owns reservation conflict detection and the
// concurrency-safe create/update/cancel flow. It is the only place allowed
// to write reservations; everything it persists has passed range validation
// and an overlap check against a fresh read of the room's reservations.
package booking

import (
	"errors"

	"github.com/iliyamo/room-reservation/internal/timerange"
)

// ErrInvalidRange mirrors timerange.ErrInvalidRange so callers can match
// either sentinel. Client error; retrying will not help.
var ErrInvalidRange = timerange.ErrInvalidRange

// ErrUnauthorized is returned when the caller is not authenticated or is not
// an authorized user of the company whose room they are booking.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated caller tries to mutate a
// reservation they neither created nor administer via room ownership.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when the referenced reservation or room does not
// exist.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken is returned when the candidate interval overlaps an existing
// reservation on the same room. It carries a user-facing meaning distinct
// from generic failure and must never be silently retried: room availability
// does not change by retrying.
var ErrSlotTaken = errors.New("slot already booked")

// ErrStoreUnavailable wraps transient persistence failures. Safe to retry
// with backoff at the caller's discretion.
var ErrStoreUnavailable = errors.New("store unavailable")
