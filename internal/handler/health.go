package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes. It deliberately touches no dependency:
// a degraded database or broker must not make the process look dead.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
