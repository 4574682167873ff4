// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationBookedEvent is published when a reservation is successfully
// persisted. It carries enough denormalized context for downstream consumers
// to log, notify, or feed analytics without querying the primary database.
type ReservationBookedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	RoomID        uint64 `json:"room_id"`
	RoomName      string `json:"room_name"`
	CompanyID     uint64 `json:"company_id"`
	CompanyName   string `json:"company_name"`
	StartsAt      string `json:"start_date"`
	EndsAt        string `json:"end_date"`
	Label         string `json:"text"`
	DurationMin   int    `json:"duration"`
	BookedAt      string `json:"booked_at"`
}

// ReservationCancelledEvent is published after a cancellation actually
// removed a row. Cancellations that matched nothing publish no event.
type ReservationCancelledEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	CancelledAt   string `json:"cancelled_at"`
}
