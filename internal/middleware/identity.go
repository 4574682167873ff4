package middleware

// identity.go holds the user identification shared across middleware files.
// The rate limiter keys buckets per user, so it needs a stable identifier
// for any request shape: a claim set by JWTAuth (which may arrive as a
// string or a JSON number), a parsed token left in context, or nothing, in
// which case "anon" groups all unauthenticated traffic together.

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the Echo context. It returns "anon"
// when no user is authenticated or the claims are missing.
func userID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return strconv.FormatUint(uint64(t), 10)
		case uint64:
			return strconv.FormatUint(t, 10)
		case int64:
			return strconv.FormatInt(t, 10)
		}
	}
	if tok, ok := c.Get("user").(*jwt.Token); ok {
		if cl, ok := tok.Claims.(jwt.MapClaims); ok {
			if v, ok := cl["sub"].(string); ok && v != "" {
				return v
			}
			if v, ok := cl["sub"].(float64); ok {
				return strconv.FormatUint(uint64(v), 10)
			}
		}
	}
	return "anon"
}
