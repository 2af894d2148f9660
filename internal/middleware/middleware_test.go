package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"physio-service/pkg/jwtutil"
	"physio-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequestIDGenerated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *zap.Logger
	h := RequestIDMiddleware()(func(c echo.Context) error {
		seen, _ = c.Get(logger.EchoKey).(*zap.Logger)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	id := rec.Header().Get(RequestIDKey)
	assert.Len(t, id, 36)
	assert.Equal(t, id, req.Header.Get(RequestIDKey))
	assert.NotNil(t, seen)
}

func TestRequestIDReused(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDKey, "abc-123")
	rec := httptest.NewRecorder()

	h := RequestIDMiddleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDKey))
}

func serveWithAuth(t *testing.T, util *jwtutil.JWTUtil, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuthMiddleware(util)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthMiddleware(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	util := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "k", TTL: 30 * time.Minute}, jwtutil.WithClock(clock))
	token, err := util.GenerateToken("a@x.com", 7, "patient")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		rec, c := serveWithAuth(t, util, "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		id, ok := UserID(c)
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
		assert.Equal(t, "a@x.com", c.Get(EmailKey))
		assert.Equal(t, "patient", c.Get(RoleKey))
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		rec, _ := serveWithAuth(t, util, "bearer "+token.AccessToken)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec, c := serveWithAuth(t, util, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
		_, ok := UserID(c)
		assert.False(t, ok)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec, _ := serveWithAuth(t, util, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		rec, _ := serveWithAuth(t, util, "Bearer "+token.AccessToken+"x")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		later := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "k", TTL: 30 * time.Minute},
			jwtutil.WithClock(func() time.Time { return now.Add(31 * time.Minute) }))
		rec, _ := serveWithAuth(t, later, "Bearer "+token.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestJWTAuthMiddlewareDisabled(t *testing.T) {
	util := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{Disabled: true, TTL: time.Minute})

	rec, c := serveWithAuth(t, util, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, ok := UserID(c)
	assert.False(t, ok)
}
