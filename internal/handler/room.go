package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// RoomHandler groups the admin-side room endpoints. Room names are unique
// per company on their normalized form; lookups by name accept either the
// display form or its slug.
type RoomHandler struct {
	Rooms     *repository.RoomRepo
	Companies *repository.CompanyRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, companies *repository.CompanyRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Companies: companies}
}

// Create handles POST /v1/rooms. The target company comes in the body and
// must be administered by the caller.
func (h *RoomHandler) Create(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		CompanyID uint64 `json:"company_id"`
		Name      string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CompanyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_id is required"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	company, err := h.Companies.GetByID(c.Request().Context(), body.CompanyID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if company.AdminID != adminID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your company"})
	}
	room := &model.Room{CompanyID: body.CompanyID, AdminID: adminID, Name: name}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room name already exists in this company"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, room)
}

// List handles GET /v1/companies/:id/rooms. Any authenticated user may list
// rooms; booking authorization happens at reservation time.
func (h *RoomHandler) List(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	items, err := h.Rooms.ListByCompany(c.Request().Context(), companyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, room)
}

// GetByName handles GET /v1/companies/:id/rooms/by-name/:name, the lookup a
// client uses to resolve a slug from a calendar URL back to a room.
func (h *RoomHandler) GetByName(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	companyID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	name := c.Param("name")
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	room, err := h.Rooms.GetByName(c.Request().Context(), companyID, name)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, room)
}
