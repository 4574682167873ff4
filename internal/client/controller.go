// Package client contains the calendar-side reservation controller: the
// state machine that reconciles optimistic widget edits with the booking
// API. Edits apply to the local event list immediately, then either commit
// (swapping a temporary id for the server-assigned one) or roll back to the
// snapshot captured before the edit began.
package client

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/room-reservation/internal/booking"
	"github.com/iliyamo/room-reservation/internal/model"
)

// State tracks one in-flight edit: Idle until the user touches the event,
// Pending while the network call is outstanding, then Committed or
// RolledBack.
type State int

const (
	StateIdle State = iota
	StatePending
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "idle"
	}
}

// ErrEditInFlight is returned when a second mutation targets an event whose
// previous mutation is still Pending. Firing both concurrently risks a
// lost update against the same record, so the caller must wait or retry.
var ErrEditInFlight = errors.New("edit already in flight for this reservation")

// Event is a calendar entry as the widget renders it. Server-backed events
// carry the decimal form of the reservation id; optimistic inserts carry a
// "tmp-" prefixed id until the create confirms.
type Event struct {
	ID    string
	Start time.Time
	End   time.Time
	Label string
}

// BookingAPI is the server surface the controller talks to. In the browser
// this is HTTP; in tests it is a fake.
type BookingAPI interface {
	CreateReservation(ctx context.Context, roomID uint64, start, end time.Time, label string) (*model.Reservation, error)
	UpdateReservation(ctx context.Context, id uint64, start, end time.Time, label string) (*model.Reservation, error)
	CancelReservation(ctx context.Context, id uint64) (int64, error)
}

// Feedback is the user-visible outcome of an edit. SlotTaken failures carry
// a specific message so the UI can distinguish "already booked" from a
// generic error.
type Feedback struct {
	Action  string // "create", "update", "delete"
	OK      bool
	Message string
}

// Controller manages the calendar for one room. All exported methods are
// safe for concurrent use; the mutex is released around API calls so other
// events stay editable while one mutation is in flight.
type Controller struct {
	api    BookingAPI
	roomID uint64
	notify func(Feedback)

	mu      sync.Mutex
	events  map[string]Event
	pending map[string]struct{}
	states  map[string]State
}

// NewController builds a controller for the given room. notify may be nil.
func NewController(api BookingAPI, roomID uint64, notify func(Feedback)) *Controller {
	if api == nil {
		panic("nil api passed to NewController")
	}
	if notify == nil {
		notify = func(Feedback) {}
	}
	return &Controller{
		api:     api,
		roomID:  roomID,
		notify:  notify,
		events:  make(map[string]Event),
		pending: make(map[string]struct{}),
		states:  make(map[string]State),
	}
}

// Load replaces the local event list with the server-rendered one. Pending
// edits are untouched; the widget calls this on initial render.
func (c *Controller) Load(reservations []model.Reservation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = make(map[string]Event, len(reservations))
	for i := range reservations {
		ev := eventFrom(&reservations[i])
		c.events[ev.ID] = ev
	}
}

// Events returns the current calendar contents ordered by start time,
// including optimistic entries that have not confirmed yet.
func (c *Controller) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// StateOf reports the edit state of an event id. Unknown ids are Idle.
func (c *Controller) StateOf(id string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[id]
}

// Create inserts the new slot optimistically under a temporary id and asks
// the server to book it. On success the temporary id is swapped for the
// server-assigned one and the final id is returned; on failure the entry is
// removed again. A local overlap guard rejects slots the calendar already
// shows as taken without a round-trip.
func (c *Controller) Create(ctx context.Context, start, end time.Time, label string) (string, error) {
	c.mu.Lock()
	for _, other := range c.events {
		if start.Before(other.End) && other.Start.Before(end) {
			c.mu.Unlock()
			c.notify(Feedback{Action: "create", OK: false, Message: msgSlotTaken})
			return "", booking.ErrSlotTaken
		}
	}
	tempID := "tmp-" + uuid.NewString()
	c.events[tempID] = Event{ID: tempID, Start: start, End: end, Label: label}
	c.pending[tempID] = struct{}{}
	c.states[tempID] = StatePending
	c.mu.Unlock()

	res, err := c.api.CreateReservation(ctx, c.roomID, start, end, label)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, tempID)
	if err != nil {
		// Roll back the optimistic insert.
		delete(c.events, tempID)
		c.states[tempID] = StateRolledBack
		c.notify(Feedback{Action: "create", OK: false, Message: messageFor(err)})
		return "", err
	}

	// Swap the temporary id for the authoritative one.
	finalID := formatID(res.ID)
	ev := c.events[tempID]
	ev.ID = finalID
	delete(c.events, tempID)
	delete(c.states, tempID)
	c.events[finalID] = ev
	c.states[finalID] = StateCommitted
	c.notify(Feedback{Action: "create", OK: true, Message: "reservation created"})
	return finalID, nil
}

// Update moves or resizes an existing event optimistically and confirms the
// change with the server, reverting to the pre-edit snapshot on failure.
// Only one mutation per event may be outstanding; a concurrent second edit
// fails with ErrEditInFlight.
func (c *Controller) Update(ctx context.Context, id string, start, end time.Time, label string) error {
	c.mu.Lock()
	if _, busy := c.pending[id]; busy {
		c.mu.Unlock()
		return ErrEditInFlight
	}
	prev, ok := c.events[id]
	if !ok {
		c.mu.Unlock()
		return booking.ErrNotFound
	}
	resID, err := parseID(id)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.events[id] = Event{ID: id, Start: start, End: end, Label: label}
	c.pending[id] = struct{}{}
	c.states[id] = StatePending
	c.mu.Unlock()

	_, apiErr := c.api.UpdateReservation(ctx, resID, start, end, label)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
	if apiErr != nil {
		// Revert to the last known-good range captured before the edit.
		c.events[id] = prev
		c.states[id] = StateRolledBack
		c.notify(Feedback{Action: "update", OK: false, Message: messageFor(apiErr)})
		return apiErr
	}
	c.states[id] = StateCommitted
	c.notify(Feedback{Action: "update", OK: true, Message: "reservation updated"})
	return nil
}

// Delete removes the event optimistically and cancels it server-side. A
// cancel that reports zero deleted rows still removes the local entry: the
// reservation is either already gone or was never the caller's to see.
// Transport failures restore the event.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if _, busy := c.pending[id]; busy {
		c.mu.Unlock()
		return ErrEditInFlight
	}
	prev, ok := c.events[id]
	if !ok {
		c.mu.Unlock()
		return booking.ErrNotFound
	}
	resID, err := parseID(id)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	delete(c.events, id)
	c.pending[id] = struct{}{}
	c.states[id] = StatePending
	c.mu.Unlock()

	_, apiErr := c.api.CancelReservation(ctx, resID)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
	if apiErr != nil {
		c.events[id] = prev
		c.states[id] = StateRolledBack
		c.notify(Feedback{Action: "delete", OK: false, Message: messageFor(apiErr)})
		return apiErr
	}
	c.states[id] = StateCommitted
	c.notify(Feedback{Action: "delete", OK: true, Message: "reservation cancelled"})
	return nil
}

const msgSlotTaken = "this time slot is already booked"

func messageFor(err error) string {
	switch {
	case errors.Is(err, booking.ErrSlotTaken):
		return msgSlotTaken
	case errors.Is(err, booking.ErrForbidden), errors.Is(err, booking.ErrUnauthorized):
		return "you are not allowed to change this reservation"
	default:
		return "could not save reservation, please try again"
	}
}

func eventFrom(res *model.Reservation) Event {
	return Event{
		ID:    formatID(res.ID),
		Start: res.StartsAt,
		End:   res.EndsAt,
		Label: res.Label,
	}
}

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }

func parseID(id string) (uint64, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, booking.ErrNotFound
	}
	return n, nil
}
