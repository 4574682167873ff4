// Package router wires HTTP routes to their handlers and middleware. Routes
// are grouped by audience: unauthenticated auth/health endpoints, the booking
// surface every signed-in user gets, and the ADMIN-only management surface.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, which load balancers and
// monitoring use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and issues a new access token.
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token or a refresh token in the body and
	// revokes the session. No JWT middleware so an expired access token can
	// still log out with its refresh token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStandard))
	auth.GET("/me", a.Me)
}
