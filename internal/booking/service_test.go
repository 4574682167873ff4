package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/timerange"
)

// fakeStore is an in-memory ReservationStore plus the room, company and
// roster lookups the service needs. It also implements InvalidationCache and
// records every invalidation so tests can assert on them.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint64
	resv   map[uint64]model.Reservation

	rooms     map[uint64]model.Room
	companies map[uint64]model.Company
	roster    map[uint64]map[uint64]bool // companyID -> userID -> member

	invalidations [][3]uint64

	failList bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:    1,
		resv:      make(map[uint64]model.Reservation),
		rooms:     make(map[uint64]model.Room),
		companies: make(map[uint64]model.Company),
		roster:    make(map[uint64]map[uint64]bool),
	}
}

func (f *fakeStore) addRoom(id, companyID, adminID uint64, name string) {
	f.rooms[id] = model.Room{ID: id, CompanyID: companyID, AdminID: adminID, Name: name}
}

func (f *fakeStore) addCompany(id, adminID uint64, name string) {
	f.companies[id] = model.Company{ID: id, AdminID: adminID, Name: name}
}

func (f *fakeStore) addMember(companyID, userID uint64) {
	if f.roster[companyID] == nil {
		f.roster[companyID] = make(map[uint64]bool)
	}
	f.roster[companyID][userID] = true
}

func (f *fakeStore) Create(_ context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	res.ID = f.nextID
	f.nextID++
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	f.resv[res.ID] = *res
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resv[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (f *fakeStore) UpdateTimes(_ context.Context, id uint64, start, end time.Time, label string, durationMin int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resv[id]
	if !ok {
		return repository.ErrReservationNotFound
	}
	r.StartsAt, r.EndsAt, r.Label, r.DurationMin = start, end, label, durationMin
	f.resv[id] = r
	return nil
}

func (f *fakeStore) DeleteOwned(_ context.Context, id, callerID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resv[id]
	if !ok {
		return 0, nil
	}
	if r.UserID != callerID && f.rooms[r.RoomID].AdminID != callerID {
		return 0, nil
	}
	delete(f.resv, id)
	return 1, nil
}

func (f *fakeStore) ListByRoom(_ context.Context, roomID uint64) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errors.New("connection refused")
	}
	var out []model.Reservation
	for _, r := range f.resv {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) GetRoomByID(_ context.Context, id uint64) (*model.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, repository.ErrRoomNotFound
	}
	return &r, nil
}

func (f *fakeStore) GetCompanyByID(_ context.Context, id uint64) (*model.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}
	return &c, nil
}

func (f *fakeStore) IsMember(_ context.Context, companyID, userID uint64) (bool, error) {
	return f.roster[companyID][userID], nil
}

func (f *fakeStore) InvalidateReservations(_ context.Context, userID, roomID, companyID uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations = append(f.invalidations, [3]uint64{userID, roomID, companyID})
}

// The store interfaces take different receivers for room and company
// lookups, so thin adapters bind the shared fake to each one.
type roomStoreAdapter struct{ *fakeStore }

func (a roomStoreAdapter) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	return a.GetRoomByID(ctx, id)
}

type companyStoreAdapter struct{ *fakeStore }

func (a companyStoreAdapter) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
	return a.GetCompanyByID(ctx, id)
}

func newTestService(f *fakeStore) *Service {
	return NewService(f, roomStoreAdapter{f}, companyStoreAdapter{f}, f, f)
}

func mustRange(t *testing.T, start, end string) timerange.Range {
	t.Helper()
	r, err := timerange.New(start, end)
	require.NoError(t, err)
	return r
}

// seeded returns a service with company 1 (admin 10), room 1 in it, and user
// 20 on the roster.
func seeded(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	f := newFakeStore()
	f.addCompany(1, 10, "Acme Corp")
	f.addRoom(1, 1, 10, "Blue Room")
	f.addMember(1, 20)
	return newTestService(f), f
}

func TestCreateAssignsIDAndDenormalizedNames(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:30:00Z"), "standup")
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, "Blue Room", res.RoomName)
	assert.Equal(t, "Acme Corp", res.CompanyName)
	assert.Equal(t, 90, res.DurationMin)
	assert.Equal(t, "1 hour 30 minutes", svc.FormatDuration(res))
}

func TestCreateRejectsNonMember(t *testing.T) {
	svc, _ := seeded(t)

	_, err := svc.Create(context.Background(), Caller{ID: 99}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateAdminBypassesRoster(t *testing.T) {
	svc, _ := seeded(t)

	// 10 administers the company but is not on the roster.
	_, err := svc.Create(context.Background(), Caller{ID: 10}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	assert.NoError(t, err)
}

func TestCreateInvalidRangeFailsBeforeAnyStoreRead(t *testing.T) {
	svc, f := seeded(t)
	f.failList = true // a conflict read would error; validation must win

	good := mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z")
	inverted := timerange.Range{Start: good.End, End: good.Start}
	_, err := svc.Create(context.Background(), Caller{ID: 20}, 1, inverted, "")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCreateConflictMatrix(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		wantErr    error
	}{
		{"exact duplicate", "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z", ErrSlotTaken},
		{"partial overlap tail", "2026-09-01T09:30:00Z", "2026-09-01T10:30:00Z", ErrSlotTaken},
		{"partial overlap head", "2026-09-01T08:30:00Z", "2026-09-01T09:30:00Z", ErrSlotTaken},
		{"containing", "2026-09-01T08:00:00Z", "2026-09-01T11:00:00Z", ErrSlotTaken},
		{"contained", "2026-09-01T09:15:00Z", "2026-09-01T09:45:00Z", ErrSlotTaken},
		{"touching end", "2026-09-01T10:00:00Z", "2026-09-01T11:00:00Z", nil},
		{"touching start", "2026-09-01T08:00:00Z", "2026-09-01T09:00:00Z", nil},
		{"disjoint", "2026-09-01T12:00:00Z", "2026-09-01T13:00:00Z", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := seeded(t)
			ctx := context.Background()
			_, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "first")
			require.NoError(t, err)

			_, err = svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, tc.start, tc.end), "second")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateSameSlotDifferentRoomsBothSucceed(t *testing.T) {
	svc, f := seeded(t)
	f.addRoom(2, 1, 10, "Red Room")
	ctx := context.Background()
	r := mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z")

	_, err := svc.Create(ctx, Caller{ID: 20}, 1, r, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Caller{ID: 20}, 2, r, "")
	assert.NoError(t, err)
}

func TestConcurrentCreatesSameSlotExactlyOneWins(t *testing.T) {
	svc, f := seeded(t)
	ctx := context.Background()
	r := mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z")

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, Caller{ID: 20}, 1, r, "race")
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, f.resv, 1)
}

func TestUpdateExcludesSelfFromConflictCheck(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)

	// Shift within its own old window: overlaps only itself, must succeed.
	updated, err := svc.Update(ctx, Caller{ID: 20}, res.ID, mustRange(t, "2026-09-01T09:30:00Z", "2026-09-01T10:30:00Z"), "moved")
	require.NoError(t, err)
	assert.Equal(t, "moved", updated.Label)
	assert.Equal(t, 60, updated.DurationMin)
}

func TestUpdateConflictLeavesRowUntouched(t *testing.T) {
	svc, f := seeded(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T11:00:00Z", "2026-09-01T12:00:00Z"), "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, Caller{ID: 20}, second.ID, mustRange(t, "2026-09-01T09:30:00Z", "2026-09-01T10:00:00Z"), "")
	assert.ErrorIs(t, err, ErrSlotTaken)

	stored := f.resv[second.ID]
	assert.True(t, stored.StartsAt.Equal(second.StartsAt), "conflicting update must not modify the row")
}

func TestUpdateAuthorization(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)

	// Unrelated user: forbidden.
	_, err = svc.Update(ctx, Caller{ID: 30}, res.ID, mustRange(t, "2026-09-01T13:00:00Z", "2026-09-01T14:00:00Z"), "")
	assert.ErrorIs(t, err, ErrForbidden)

	// Room admin may move anyone's reservation.
	_, err = svc.Update(ctx, Caller{ID: 10}, res.ID, mustRange(t, "2026-09-01T13:00:00Z", "2026-09-01T14:00:00Z"), "")
	assert.NoError(t, err)
}

func TestUpdateMissingReservation(t *testing.T) {
	svc, _ := seeded(t)

	_, err := svc.Update(context.Background(), Caller{ID: 20}, 404, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelOwnReservation(t *testing.T) {
	svc, f := seeded(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)

	count, err := svc.Cancel(ctx, Caller{ID: 20}, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, f.resv)

	// Cancelling again is a no-op, not an error.
	count, err = svc.Cancel(ctx, Caller{ID: 20}, res.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCancelByStrangerReportsZero(t *testing.T) {
	svc, f := seeded(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)

	count, err := svc.Cancel(ctx, Caller{ID: 99}, res.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "unauthorized cancel must look identical to cancelling a missing row")
	assert.Len(t, f.resv, 1, "row must survive")
}

func TestCancelByRoomAdmin(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)

	count, err := svc.Cancel(ctx, Caller{ID: 10}, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMutationsInvalidateAllThreeScopes(t *testing.T) {
	svc, f := seeded(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)
	_, err = svc.Update(ctx, Caller{ID: 20}, res.ID, mustRange(t, "2026-09-01T11:00:00Z", "2026-09-01T12:00:00Z"), "")
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, Caller{ID: 20}, res.ID)
	require.NoError(t, err)

	require.Len(t, f.invalidations, 3)
	for _, inv := range f.invalidations {
		assert.Equal(t, [3]uint64{20, 1, 1}, inv)
	}
}

func TestFailedMutationsDoNotInvalidate(t *testing.T) {
	svc, f := seeded(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	require.NoError(t, err)
	f.invalidations = nil

	_, err = svc.Create(ctx, Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	assert.ErrorIs(t, err, ErrSlotTaken)
	count, err := svc.Cancel(ctx, Caller{ID: 99}, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Empty(t, f.invalidations)
}

func TestCreateUnknownRoom(t *testing.T) {
	svc, _ := seeded(t)

	_, err := svc.Create(context.Background(), Caller{ID: 20}, 404, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConflictCheckSurfacesStoreFailure(t *testing.T) {
	svc, f := seeded(t)
	f.failList = true

	_, err := svc.Create(context.Background(), Caller{ID: 20}, 1, mustRange(t, "2026-09-01T09:00:00Z", "2026-09-01T10:00:00Z"), "")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
