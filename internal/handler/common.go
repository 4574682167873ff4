package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/booking"
)

// getUserID extracts the user_id set by the JWT middleware from echo.Context
// and converts it to uint64. The claim may arrive in several numeric
// encodings depending on how the token was produced.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// callerFrom assembles the booking.Caller for the current request from the
// claims the JWT middleware stored in context.
func callerFrom(c echo.Context) (booking.Caller, error) {
	uid, err := getUserID(c)
	if err != nil {
		return booking.Caller{}, err
	}
	role, _ := c.Get("role").(string)
	return booking.Caller{ID: uid, Role: role}, nil
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
