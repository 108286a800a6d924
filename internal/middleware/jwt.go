package middleware // middleware contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Claims carries the identity decoded from a bearer token: the numeric
// user id (sub) and the canonical role name.
type Claims struct {
	UserID uint64
	Role   string
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request context
// under "user_id" and "role".  The provided secret must match the one used
// when issuing tokens.  Requests without a valid token are rejected with
// 401 before reaching the handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := DecodeBearer(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": err.Error()})
			}
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

// DecodeBearer parses and verifies the Authorization header of the given
// request and returns the decoded claims.  It is used by JWTAuth and
// directly by the register handler, whose gating depends on the request
// body and therefore cannot be expressed as route middleware alone.
func DecodeBearer(c echo.Context, secret string) (Claims, error) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return Claims{}, errors.New("no token provided")
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	// Parse with the HS256 signing method and our secret.  The callback
	// rejects tokens signed with any other algorithm.
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	out := Claims{}
	// MapClaims stores JSON numbers as float64.
	if sub, ok := mc["sub"].(float64); ok {
		out.UserID = uint64(sub)
	}
	if role, ok := mc["role"].(string); ok {
		out.Role = role
	}
	if out.UserID == 0 || out.Role == "" {
		return Claims{}, errors.New("invalid claims")
	}
	return out, nil
}
