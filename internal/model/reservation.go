package model

import (
	"time"

	"github.com/iliyamo/room-reservation/internal/timerange"
)

// Reservation is a time-bounded booking of a room by a user. The interval is
// half-open [StartsAt, EndsAt) in UTC; for any room the set of its
// reservations must be pairwise non-overlapping, which is the invariant the
// booking service exists to protect.
//
// RoomName and CompanyName are denormalized display copies. The ids are
// authoritative; readers resolve current names by id and fall back to the
// stored copy only when the referenced row is gone.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – room being reserved (authoritative reference).
//  RoomName    – denormalized room display name.
//  CompanyID   – company the room belongs to.
//  CompanyName – denormalized company display name.
//  UserID      – user who created the reservation.
//  StartsAt    – inclusive start instant (UTC).
//  EndsAt      – exclusive end instant (UTC), strictly after StartsAt.
//  Label       – free text shown on the calendar entry.
//  DurationMin – derived length in whole minutes.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Reservation struct {
	ID          uint64    `json:"id"`
	RoomID      uint64    `json:"room_id"`
	RoomName    string    `json:"room_name"`
	CompanyID   uint64    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	UserID      uint64    `json:"user_id"`
	StartsAt    time.Time `json:"start_date"`
	EndsAt      time.Time `json:"end_date"`
	Label       string    `json:"text"`
	DurationMin int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Range returns the reservation's interval as a timerange.Range. Stored rows
// are assumed valid, so no validation is performed here.
func (r *Reservation) Range() timerange.Range {
	return timerange.Range{Start: r.StartsAt, End: r.EndsAt}
}
