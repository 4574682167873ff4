package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/model"
)

// RegisterReservations registers the booking surface under /v1. Every
// signed-in user reaches these routes; whether a given user may book a given
// room is decided inside the booking service, not here.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStandard))

	g.POST("/reservations", h.Create)
	g.PUT("/reservations/:id", h.Update)
	g.DELETE("/reservations/:id", h.Delete)

	// Display lists, served read-through from the reservation list cache.
	g.GET("/my-reservations", h.ListMine)
	g.GET("/rooms/:id/reservations", h.ListByRoom)
	g.GET("/companies/:id/reservations", h.ListByCompany)
}

// RegisterRooms registers the room catalog reads available to every
// signed-in user. Room catalogs change rarely, so these routes additionally
// accept the response cache middleware; reservation routes never do.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStandard))
	g.Use(extra...)

	g.GET("/rooms/:id", h.Get)
	g.GET("/companies/:id/rooms", h.List)
	g.GET("/companies/:id/rooms/by-name/:name", h.GetByName)
}
