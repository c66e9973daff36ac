package middleware

import (
	"net/http"
	"time"
	"treadmill-storefront/internal/cart"
	"treadmill-storefront/internal/session"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	sessionIDKey    = "session_id"
	sessionStoreKey = "cart_store"
)

// Session attaches the caller's cart store to the request, issuing a new
// session cookie when the request has none or an expired one.
func Session(registry *session.Registry, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(cookieName); err == nil {
				id = cookie.Value
			}

			store, ok := registry.Get(id)
			if !ok {
				id, store = registry.Open("")
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(session.NewContext(req.Context(), id)))
			c.Set(sessionIDKey, id)
			c.Set(sessionStoreKey, store)
			return next(c)
		}
	}
}

func SessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}

func Store(c echo.Context) *cart.Store {
	store, _ := c.Get(sessionStoreKey).(*cart.Store)
	return store
}

// Logger writes one structured line per request.
func Logger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			logger.Info("request",
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("session_id", SessionID(c)),
				zap.Error(err))
			return nil
		}
	}
}

// EndSession drops the caller's session and expires its cookie.
func EndSession(registry *session.Registry, cookieName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(cookieName); err == nil {
			registry.Close(cookie.Value)
		}
		c.SetCookie(&http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return c.NoContent(http.StatusNoContent)
	}
}
