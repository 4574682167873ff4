package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) Range {
	t.Helper()
	r, err := New(start, end)
	require.NoError(t, err)
	return r
}

func TestNewRejectsInvalidBounds(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"end before start", "2025-03-10T11:00:00Z", "2025-03-10T10:00:00Z"},
		{"zero length", "2025-03-10T10:00:00Z", "2025-03-10T10:00:00Z"},
		{"garbage start", "not-a-time", "2025-03-10T10:00:00Z"},
		{"garbage end", "2025-03-10T10:00:00Z", "soon"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.start, tc.end)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	a := mustRange(t, "2025-03-10T10:00:00Z", "2025-03-10T11:00:00Z")
	b := mustRange(t, "2025-03-10T10:30:00Z", "2025-03-10T11:30:00Z")
	c := mustRange(t, "2025-03-10T12:00:00Z", "2025-03-10T13:00:00Z")

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
	assert.False(t, c.Overlaps(a))
}

func TestTouchingEndpointsDoNotOverlap(t *testing.T) {
	first := mustRange(t, "2025-03-10T10:00:00Z", "2025-03-10T11:00:00Z")
	second := mustRange(t, "2025-03-10T11:00:00Z", "2025-03-10T12:00:00Z")

	assert.False(t, first.Overlaps(second))
	assert.False(t, second.Overlaps(first))
}

func TestExactDuplicateOverlaps(t *testing.T) {
	a := mustRange(t, "2025-03-10T10:00:00Z", "2025-03-10T11:00:00Z")
	b := mustRange(t, "2025-03-10T10:00:00Z", "2025-03-10T11:00:00Z")
	assert.True(t, a.Overlaps(b))
}

func TestContainedIntervalOverlaps(t *testing.T) {
	outer := mustRange(t, "2025-03-10T09:00:00Z", "2025-03-10T12:00:00Z")
	inner := mustRange(t, "2025-03-10T10:00:00Z", "2025-03-10T10:30:00Z")
	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}

func TestMinutes(t *testing.T) {
	r := mustRange(t, "2025-03-10T06:00:00Z", "2025-03-10T07:30:00Z")
	assert.Equal(t, 90, r.Minutes())

	// Sub-minute remainders round down.
	r2, err := FromTimes(
		time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 6, 10, 59, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, 10, r2.Minutes())
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		start string
		end   string
		want  string
	}{
		{"2025-03-10T06:00:00Z", "2025-03-10T07:30:00Z", "1 hour 30 minutes"},
		{"2025-03-10T06:00:00Z", "2025-03-10T06:45:00Z", "45 minutes"},
		{"2025-03-10T06:00:00Z", "2025-03-10T08:00:00Z", "2 hours"},
		{"2025-03-10T06:00:00Z", "2025-03-10T07:00:00Z", "1 hour"},
		{"2025-03-10T06:00:00Z", "2025-03-10T06:01:00Z", "1 minute"},
		{"2025-03-10T06:00:00Z", "2025-03-10T08:01:00Z", "2 hours 1 minute"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(mustRange(t, tc.start, tc.end)))
		})
	}
}

func TestFromTimesNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	r, err := FromTimes(
		time.Date(2025, 3, 10, 11, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 12, 0, 0, 0, loc),
	)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, r.Start.Location())
	assert.Equal(t, 10, r.Start.Hour())
}
