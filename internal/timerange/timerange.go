// Package timerange models the half-open [start, end) interval a reservation
// occupies and provides the overlap rule every conflict check in the
// application must agree on.
package timerange

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when an interval's bounds do not parse or when
// end is not strictly after start. Zero-length and inverted intervals are
// rejected rather than silently accepted.
var ErrInvalidRange = errors.New("invalid time range")

// Range is a half-open interval [Start, End) in UTC. End must be strictly
// after Start for the range to be valid.
type Range struct {
	Start time.Time
	End   time.Time
}

// New builds a validated Range from RFC3339 strings. Both bounds are
// normalized to UTC. It returns ErrInvalidRange when either bound fails to
// parse or when end <= start.
func New(start, end string) (Range, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	return FromTimes(s, e)
}

// FromTimes builds a validated Range from time values already parsed by the
// caller. It applies the same end > start rule as New.
func FromTimes(start, end time.Time) (Range, error) {
	r := Range{Start: start.UTC(), End: end.UTC()}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate reports ErrInvalidRange when the interval is zero, inverted or has
// a zero-value bound.
func (r Range) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if !r.End.After(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether two half-open intervals intersect. The comparison
// is strict on both sides, so touching endpoints (r.End == other.Start) do
// not overlap. This is the single canonical rule; callers must not reimplement
// it with <=.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Minutes returns the interval length in whole minutes, rounded down.
func (r Range) Minutes() int {
	return int(r.End.Sub(r.Start) / time.Minute)
}

// FormatDuration renders the interval length as a human-readable string, e.g.
// "1 hour 30 minutes", "45 minutes" or "2 hours".
func FormatDuration(r Range) string {
	total := r.Minutes()
	hours := total / 60
	minutes := total % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%d %s", minutes, plural("minute", minutes))
	case minutes == 0:
		return fmt.Sprintf("%d %s", hours, plural("hour", hours))
	default:
		return fmt.Sprintf("%d %s %d %s", hours, plural("hour", hours), minutes, plural("minute", minutes))
	}
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
