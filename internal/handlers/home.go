package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler handles requests for the site root.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends the browser to the auth page.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/auth")
}

// HealthGet reports that the server is up.
func (h *HomeHandler) HealthGet(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
