package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/booking"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// memStore backs a real booking.Service with in-memory data so the
// controller can be driven against actual conflict checking.
type memStore struct {
	mu     sync.Mutex
	nextID uint64
	resv   map[uint64]model.Reservation
	room   model.Room
	co     model.Company
}

func newMemStore() *memStore {
	return &memStore{
		nextID: 1,
		resv:   make(map[uint64]model.Reservation),
		room:   model.Room{ID: 1, CompanyID: 1, AdminID: 10, Name: "Blue Room"},
		co:     model.Company{ID: 1, AdminID: 10, Name: "Acme Corp"},
	}
}

func (s *memStore) Create(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res.ID = s.nextID
	s.nextID++
	s.resv[res.ID] = *res
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resv[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (s *memStore) UpdateTimes(_ context.Context, id uint64, start, end time.Time, label string, durationMin int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.resv[id]
	r.StartsAt, r.EndsAt, r.Label, r.DurationMin = start, end, label, durationMin
	s.resv[id] = r
	return nil
}

func (s *memStore) DeleteOwned(_ context.Context, id, callerID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resv[id]
	if !ok || (r.UserID != callerID && s.room.AdminID != callerID) {
		return 0, nil
	}
	delete(s.resv, id)
	return 1, nil
}

func (s *memStore) ListByRoom(_ context.Context, roomID uint64) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, r := range s.resv {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memRooms struct{ s *memStore }

func (m memRooms) GetByID(_ context.Context, id uint64) (*model.Room, error) {
	if id != m.s.room.ID {
		return nil, repository.ErrRoomNotFound
	}
	r := m.s.room
	return &r, nil
}

type memCompanies struct{ s *memStore }

func (m memCompanies) GetByID(_ context.Context, id uint64) (*model.Company, error) {
	if id != m.s.co.ID {
		return nil, repository.ErrCompanyNotFound
	}
	c := m.s.co
	return &c, nil
}

type memMembers struct{}

func (memMembers) IsMember(_ context.Context, _, userID uint64) (bool, error) {
	return userID == 20, nil
}

type noopCache struct{}

func (noopCache) InvalidateReservations(context.Context, uint64, uint64, uint64) {}

func newServiceAPI(t *testing.T) *ServiceAPI {
	t.Helper()
	s := newMemStore()
	svc := booking.NewService(s, memRooms{s}, memCompanies{s}, memMembers{}, noopCache{})
	return &ServiceAPI{Svc: svc, Caller: booking.Caller{ID: 20, Role: model.RoleStandard}}
}

// Drives the optimistic controller against a real service: the first booking
// commits with a server id, a conflicting second booking rolls back, and the
// committed one can be moved and cancelled.
func TestControllerAgainstBookingService(t *testing.T) {
	api := newServiceAPI(t)
	ctrl := NewController(api, 1, nil)
	ctx := context.Background()

	id, err := ctrl.Create(ctx, at(9), at(10), "standup")
	require.NoError(t, err)
	assert.Equal(t, "1", id)
	assert.Equal(t, StateCommitted, ctrl.StateOf(id))

	// A second controller for the same room does not know about the first
	// booking locally, so the conflict comes back from the service.
	other := NewController(api, 1, nil)
	_, err = other.Create(ctx, at(9), at(10), "clash")
	assert.ErrorIs(t, err, booking.ErrSlotTaken)
	assert.Empty(t, other.Events())

	require.NoError(t, ctrl.Update(ctx, id, at(11), at(12), "moved"))
	require.NoError(t, ctrl.Delete(ctx, id))
	assert.Empty(t, ctrl.Events())

	// The slot freed up, so the other calendar can now take it.
	_, err = other.Create(ctx, at(11), at(12), "retry")
	assert.NoError(t, err)
}
