package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireLoopback returns a middleware that rejects requests whose
// network origin is not the local machine.  Admin and landlord account
// creation is restricted to loopback so that privileged accounts cannot
// be minted remotely even with a stolen admin token.
func RequireLoopback() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsLoopback(c.RealIP()) {
				return c.JSON(http.StatusForbidden,
					map[string]string{"message": "only allowed from localhost"})
			}
			return next(c)
		}
	}
}

// IsLoopback reports whether the given address string is a loopback
// address in either IPv4 or IPv6 notation.
func IsLoopback(ip string) bool {
	switch ip {
	case "127.0.0.1", "::1", "::ffff:127.0.0.1":
		return true
	}
	return false
}
