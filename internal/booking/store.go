package booking

import (
	"context"
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ReservationStore is the persistence surface the booking service needs.
// *repository.ReservationRepo satisfies it; tests substitute in-memory
// fakes. ListByRoom must always read the durable store directly — the
// conflict check gates a write and a stale list directly causes
// double-booking.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	UpdateTimes(ctx context.Context, id uint64, start, end time.Time, label string, durationMin int) error
	DeleteOwned(ctx context.Context, id, callerID uint64) (int64, error)
	ListByRoom(ctx context.Context, roomID uint64) ([]model.Reservation, error)
}

// RoomStore resolves rooms for authorization and denormalized names.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

// CompanyStore resolves companies and roster membership.
type CompanyStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Company, error)
}

// MemberStore answers whether a user is on a company's authorized roster.
type MemberStore interface {
	IsMember(ctx context.Context, companyID, userID uint64) (bool, error)
}

// InvalidationCache is the slice of the cache layer the service drives:
// after every successful mutation the user, room and company namespaces that
// could contain the changed reservation are dropped before the response is
// returned. Implementations must tolerate being a no-op.
type InvalidationCache interface {
	InvalidateReservations(ctx context.Context, userID, roomID, companyID uint64)
}
