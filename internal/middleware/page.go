package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/pagestate"
)

const (
	// PageContextKey holds the request's *forms.Page on the echo context.
	PageContextKey = "page"
	// SessionName is the cookie session that remembers the page id.
	SessionName = "authpanel-session"

	sessionPageKey = "page_id"
)

// Page attaches the browser's page model to the request. The page id lives
// in the session cookie; a missing or stale id gets a fresh page.
// It must run after the session middleware.
func Page(store *pagestate.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get(SessionName, c)
			if sess == nil {
				return err
			}
			if err != nil {
				// Undecodable cookie, e.g. after a secret rotation. The store
				// hands back a new session, so the page id is reissued below.
				slog.DebugContext(c.Request().Context(), "Discarding invalid session cookie", "error", err)
			}

			stored, _ := sess.Values[sessionPageKey].(string)
			page, id := store.LoadOrCreate(stored)
			if id != stored {
				sess.Options = &sessions.Options{
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				}
				sess.Values[sessionPageKey] = id
				if err := sess.Save(c.Request(), c.Response()); err != nil {
					return err
				}
				slog.DebugContext(c.Request().Context(), "Assigned new page", "page_id", id)
			}

			c.Set(PageContextKey, page)
			WithAttrs(c, "page_id", id)
			return next(c)
		}
	}
}

// PageFrom returns the page attached by the Page middleware.
func PageFrom(c echo.Context) (*forms.Page, bool) {
	p, ok := c.Get(PageContextKey).(*forms.Page)
	return p, ok && p != nil
}
