package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/booking"
	"github.com/iliyamo/room-reservation/internal/cache"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/timerange"
	queue_publisher "github.com/iliyamo/room-reservation/internal/service"
)

// ReservationHandler exposes the booking API surface. Mutations go through
// the booking service, which owns validation, authorization, conflict
// checking and cache invalidation. Display reads go through the
// read-through list cache; the service never does.
type ReservationHandler struct {
	Svc   *booking.Service
	Resv  *repository.ReservationRepo
	Lists cache.ReservationLists
}

// NewReservationHandler constructs a ReservationHandler. All dependencies
// must be non-nil.
func NewReservationHandler(svc *booking.Service, resv *repository.ReservationRepo, lists cache.ReservationLists) *ReservationHandler {
	if svc == nil || resv == nil || lists == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Svc: svc, Resv: resv, Lists: lists}
}

type reservationReq struct {
	RoomID    uint64 `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Text      string `json:"text"`
}

// bookingError translates booking sentinels into HTTP responses. SlotTaken
// carries a user-facing message distinct from generic failure so clients can
// show "already booked" instead of "something went wrong".
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time range"})
	case errors.Is(err, booking.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized for this company"})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, booking.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "this time slot is already booked"})
	case errors.Is(err, booking.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable, retry later"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// Create handles POST /v1/reservations. On success it returns 201 with the
// persisted reservation, including the store-assigned id a client needs to
// swap out its optimistic temporary id, and the formatted duration.
func (h *ReservationHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	r, err := timerange.New(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time range"})
	}

	res, err := h.Svc.Create(c.Request().Context(), caller, req.RoomID, r, req.Text)
	if err != nil {
		return bookingError(c, err)
	}

	// Event publishing is best-effort; failures are logged by the publisher
	// and never fail the booking.
	go func(res model.Reservation) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationBooked(ctx, queue_publisher.BookedEventFrom(&res))
	}(*res)

	return c.JSON(http.StatusCreated, echo.Map{
		"item":     res,
		"duration": h.Svc.FormatDuration(res),
	})
}

// Update handles PUT /v1/reservations/:id. The conflict check excludes the
// reservation itself and runs before anything is written, so a 409 leaves
// the stored interval untouched.
func (h *ReservationHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	r, err := timerange.New(req.StartDate, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time range"})
	}

	res, err := h.Svc.Update(c.Request().Context(), caller, id, r, req.Text)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item":     res,
		"duration": h.Svc.FormatDuration(res),
	})
}

// Delete handles DELETE /v1/reservations/:id. The response always reports a
// count: 0 covers both "already gone" and "not yours to cancel", which are
// deliberately indistinguishable, and repeating the call is a no-op.
func (h *ReservationHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	count, err := h.Svc.Cancel(c.Request().Context(), caller, id)
	if err != nil {
		return bookingError(c, err)
	}
	if count > 0 {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = queue_publisher.PublishReservationCancelled(ctx, id, caller.ID)
		}()
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": count})
}

// ListMine handles GET /v1/my-reservations: the caller's reservations,
// newest first, served read-through from the user-scoped cache.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return h.listScoped(c, cache.ScopeUser, userID, h.Resv.ListByUser)
}

// ListByRoom handles GET /v1/rooms/:id/reservations — the list a calendar
// widget renders for one room.
func (h *ReservationHandler) ListByRoom(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	return h.listScoped(c, cache.ScopeRoom, roomID, h.Resv.ListByRoom)
}

// ListByCompany handles GET /v1/companies/:id/reservations.
func (h *ReservationHandler) ListByCompany(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company id"})
	}
	return h.listScoped(c, cache.ScopeCompany, companyID, h.Resv.ListByCompany)
}

// listScoped is the shared read-through path for display lists: cache hit if
// present, otherwise store fetch plus cache fill. These lists are for
// rendering only; conflict arbitration reads the store directly.
func (h *ReservationHandler) listScoped(c echo.Context, scope cache.Scope, id uint64, fetch func(context.Context, uint64) ([]model.Reservation, error)) error {
	ctx := c.Request().Context()
	if items, ok := h.Lists.Get(ctx, scope, id); ok {
		return c.JSON(http.StatusOK, echo.Map{"items": items, "cached": true})
	}
	items, err := fetch(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	h.Lists.Set(ctx, scope, id, items)
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
