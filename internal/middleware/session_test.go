package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"treadmill-storefront/internal/cart"
	"treadmill-storefront/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func serve(e *echo.Echo, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSession_IssuesAndReusesCookie(t *testing.T) {
	registry := session.NewRegistry(time.Hour, zap.NewNop())
	var seen []*cart.Store

	e := echo.New()
	e.GET("/cart", func(c echo.Context) error {
		seen = append(seen, Store(c))
		return c.String(http.StatusOK, SessionID(c))
	}, Session(registry, "sid"))

	rec := serve(e, nil)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, cookies[0].Value, rec.Body.String())

	rec = serve(e, cookies[0])
	assert.Empty(t, rec.Result().Cookies())
	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1])
	assert.Equal(t, 1, registry.Len())
}

func TestSession_UnknownCookieGetsFreshSession(t *testing.T) {
	registry := session.NewRegistry(time.Hour, zap.NewNop())

	e := echo.New()
	e.GET("/cart", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Session(registry, "sid"))

	rec := serve(e, &http.Cookie{Name: "sid", Value: "stale"})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotEqual(t, "stale", cookies[0].Value)
}

func TestLogger_RecordsStatusOfFailedRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	e := echo.New()
	e.Use(Logger(zap.New(core)))
	e.GET("/cart", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	rec := serve(e, nil)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusTeapot), entries[0].ContextMap()["status"])
	assert.Equal(t, "/cart", entries[0].ContextMap()["path"])
}

func TestSession_PutsIDOnRequestContext(t *testing.T) {
	registry := session.NewRegistry(time.Hour, zap.NewNop())

	e := echo.New()
	e.GET("/cart", func(c echo.Context) error {
		assert.Equal(t, SessionID(c), session.IDFromContext(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	}, Session(registry, "sid"))

	rec := serve(e, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEndSession_DropsSessionAndExpiresCookie(t *testing.T) {
	registry := session.NewRegistry(time.Hour, zap.NewNop())
	id, _ := registry.Open("")

	e := echo.New()
	e.DELETE("/session", EndSession(registry, "sid"))

	req := httptest.NewRequest(http.MethodDelete, "/session", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, registry.Len())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
