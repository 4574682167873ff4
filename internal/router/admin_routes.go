package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/model"
)

// RegisterAdmin registers the ADMIN-scoped management endpoints under /v1:
// company CRUD, roster management and room creation. The role middleware
// keeps STANDARD users out wholesale; per-company ownership is checked in
// the handlers.
func RegisterAdmin(e *echo.Echo, ch *handler.CompanyHandler, rh *handler.RoomHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.POST("/companies", ch.Create)
	g.GET("/companies", ch.List)
	g.GET("/companies/:id", ch.Get)

	g.POST("/companies/:id/members", ch.AddMember)
	g.GET("/companies/:id/members", ch.ListMembers)
	g.DELETE("/companies/:id/members/:userID", ch.RemoveMember)

	g.POST("/rooms", rh.Create)
}
