package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedspace/backend/internal/config"
	"github.com/bedspace/backend/internal/utils"
)

const testSecret = "testsecret"

func doRequest(mw echo.MiddlewareFunc, header, remoteAddr string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	_ = handler(c)
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "TENANT", 1)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uint64
	var gotRole string
	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		gotID = c.Get("user_id").(uint64)
		gotRole = c.Get("role").(string)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotID)
	assert.Equal(t, "TENANT", gotRole)
}

func TestJWTAuthRejectsMissingAndInvalid(t *testing.T) {
	rec := doRequest(JWTAuth(testSecret), "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(JWTAuth(testSecret), "Bearer not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with a different secret is rejected.
	tok, err := utils.NewAccessToken("othersecret", 7, "TENANT", 1)
	require.NoError(t, err)
	rec = doRequest(JWTAuth(testSecret), "Bearer "+tok.Token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		handler := RequireRole("LANDLORD", "ADMIN")(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})
		_ = handler(c)
		return rec
	}

	assert.Equal(t, http.StatusOK, run("LANDLORD").Code)
	assert.Equal(t, http.StatusOK, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("TENANT").Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}

func TestRequireLoopback(t *testing.T) {
	rec := doRequest(RequireLoopback(), "", "127.0.0.1:4321")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(RequireLoopback(), "", "10.1.2.3:4321")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, IsLoopback("127.0.0.1"))
	assert.True(t, IsLoopback("::1"))
	assert.True(t, IsLoopback("::ffff:127.0.0.1"))
	assert.False(t, IsLoopback("192.168.1.10"))
	assert.False(t, IsLoopback(""))
}

func TestFixedWindowPassThroughWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: 1}
	rec := doRequest(NewFixedWindow(cfg, nil), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
