package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/timerange"
)

// Caller is the identity the auth layer established for the current request.
type Caller struct {
	ID    uint64
	Email string
	Role  string
}

// Service orchestrates validation, authorization, conflict checking and
// persistence for reservations, and owns cache invalidation on every
// mutation. A per-room mutex is held from the conflict read through the
// write so no two bookings for the same room can interleave between check
// and persist.
type Service struct {
	reservations ReservationStore
	rooms        RoomStore
	companies    CompanyStore
	members      MemberStore
	cache        InvalidationCache
	checker      *ConflictChecker
	locks        *roomLocks
}

// NewService constructs a booking Service. The cache may be a no-op but must
// be non-nil; everything else is required.
func NewService(resv ReservationStore, rooms RoomStore, companies CompanyStore, members MemberStore, cache InvalidationCache) *Service {
	if resv == nil || rooms == nil || companies == nil || members == nil || cache == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{
		reservations: resv,
		rooms:        rooms,
		companies:    companies,
		members:      members,
		cache:        cache,
		checker:      NewConflictChecker(resv),
		locks:        newRoomLocks(),
	}
}

// Create books a room for the caller. It authorizes the caller against the
// room's company, validates the range, conflict-checks under the room lock
// and persists. The returned reservation carries the store-assigned id so
// clients that inserted an optimistic temporary entry can swap ids.
func (s *Service) Create(ctx context.Context, caller Caller, roomID uint64, r timerange.Range, label string) (*model.Reservation, error) {
	if caller.ID == 0 {
		return nil, ErrUnauthorized
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: resolving room %d: %v", ErrStoreUnavailable, roomID, err)
	}
	company, err := s.companies.GetByID(ctx, room.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: resolving company %d: %v", ErrStoreUnavailable, room.CompanyID, err)
	}
	if err := s.authorizeForCompany(ctx, caller, company); err != nil {
		return nil, err
	}

	mu := s.locks.forRoom(roomID)
	mu.Lock()
	defer mu.Unlock()

	conflict, err := s.checker.HasConflict(ctx, roomID, r, 0)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotTaken
	}

	res := &model.Reservation{
		RoomID:      room.ID,
		RoomName:    room.Name,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		UserID:      caller.ID,
		StartsAt:    r.Start,
		EndsAt:      r.End,
		Label:       label,
		DurationMin: r.Minutes(),
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("%w: creating reservation: %v", ErrStoreUnavailable, err)
	}

	s.cache.InvalidateReservations(ctx, caller.ID, room.ID, company.ID)
	return res, nil
}

// Update changes an existing reservation's interval and label. Only the
// reservation's creator or the admin owning its room may do so. The conflict
// check runs before anything is persisted, excluding the reservation itself,
// so a failed update leaves the stored row untouched.
func (s *Service) Update(ctx context.Context, caller Caller, id uint64, r timerange.Range, label string) (*model.Reservation, error) {
	if caller.ID == 0 {
		return nil, ErrUnauthorized
	}

	existing, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: fetching reservation %d: %v", ErrStoreUnavailable, id, err)
	}
	if err := s.authorizeMutation(ctx, caller, existing); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	mu := s.locks.forRoom(existing.RoomID)
	mu.Lock()
	defer mu.Unlock()

	conflict, err := s.checker.HasConflict(ctx, existing.RoomID, r, existing.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotTaken
	}

	if err := s.reservations.UpdateTimes(ctx, id, r.Start, r.End, label, r.Minutes()); err != nil {
		return nil, fmt.Errorf("%w: updating reservation %d: %v", ErrStoreUnavailable, id, err)
	}

	s.cache.InvalidateReservations(ctx, existing.UserID, existing.RoomID, existing.CompanyID)

	updated := *existing
	updated.StartsAt = r.Start
	updated.EndsAt = r.End
	updated.Label = label
	updated.DurationMin = r.Minutes()
	return &updated, nil
}

// Cancel deletes a reservation. Authorization is folded into the delete
// predicate (creator or room-owning admin) so there is no check-then-delete
// race; the returned count is 0 when the row is already gone or the caller
// is not allowed to remove it, and the two cases are deliberately
// indistinguishable. Cancelling twice is a no-op, never an error.
func (s *Service) Cancel(ctx context.Context, caller Caller, id uint64) (int64, error) {
	if caller.ID == 0 {
		return 0, ErrUnauthorized
	}

	// Snapshot scope ids before the delete; they are needed to invalidate
	// the right cache namespaces and are gone once the row is.
	existing, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: fetching reservation %d: %v", ErrStoreUnavailable, id, err)
	}

	count, err := s.reservations.DeleteOwned(ctx, id, caller.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting reservation %d: %v", ErrStoreUnavailable, id, err)
	}
	if count > 0 {
		s.cache.InvalidateReservations(ctx, existing.UserID, existing.RoomID, existing.CompanyID)
	}
	return count, nil
}

// FormatDuration exposes the display formatting for a stored reservation,
// e.g. "1 hour 30 minutes".
func (s *Service) FormatDuration(res *model.Reservation) string {
	return timerange.FormatDuration(res.Range())
}

// authorizeForCompany checks that the caller may book within the company:
// its admin, or anyone on the roster.
func (s *Service) authorizeForCompany(ctx context.Context, caller Caller, company *model.Company) error {
	if company.AdminID == caller.ID {
		return nil
	}
	ok, err := s.members.IsMember(ctx, company.ID, caller.ID)
	if err != nil {
		return fmt.Errorf("%w: checking roster for company %d: %v", ErrStoreUnavailable, company.ID, err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

// authorizeMutation checks that the caller may change an existing
// reservation: its creator, or the admin owning the room it sits on.
func (s *Service) authorizeMutation(ctx context.Context, caller Caller, res *model.Reservation) error {
	if res.UserID == caller.ID {
		return nil
	}
	room, err := s.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("%w: resolving room %d: %v", ErrStoreUnavailable, res.RoomID, err)
	}
	if room.AdminID != caller.ID {
		return ErrForbidden
	}
	return nil
}
