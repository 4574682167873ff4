package client

import (
	"context"
	"time"

	"github.com/iliyamo/room-reservation/internal/booking"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/timerange"
)

// ServiceAPI adapts an in-process booking.Service to the BookingAPI the
// controller expects, acting as the caller it was built for. It is used by
// tests and by server-rendered flows that skip the HTTP hop.
type ServiceAPI struct {
	Svc    *booking.Service
	Caller booking.Caller
}

func (a *ServiceAPI) CreateReservation(ctx context.Context, roomID uint64, start, end time.Time, label string) (*model.Reservation, error) {
	r, err := timerange.FromTimes(start, end)
	if err != nil {
		return nil, err
	}
	return a.Svc.Create(ctx, a.Caller, roomID, r, label)
}

func (a *ServiceAPI) UpdateReservation(ctx context.Context, id uint64, start, end time.Time, label string) (*model.Reservation, error) {
	r, err := timerange.FromTimes(start, end)
	if err != nil {
		return nil, err
	}
	return a.Svc.Update(ctx, a.Caller, id, r, label)
}

func (a *ServiceAPI) CancelReservation(ctx context.Context, id uint64) (int64, error) {
	return a.Svc.Cancel(ctx, a.Caller, id)
}
