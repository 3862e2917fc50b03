package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	appmiddleware "github.com/nfrund/authpanel/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unhandled errors
// with a stack trace before echo writes the response.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				appmiddleware.FromContext(c.Request().Context()).Error("Server error",
					"status", he.Code, "error", err)
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		appmiddleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err), c)
	}
}
