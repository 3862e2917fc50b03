package server

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/authpanel/internal/assets"
	"github.com/nfrund/authpanel/internal/config"
	"github.com/nfrund/authpanel/internal/handlers"
	appmiddleware "github.com/nfrund/authpanel/internal/middleware"
	"github.com/nfrund/authpanel/internal/pagestate"
	"github.com/nfrund/authpanel/internal/pubsub"
	"github.com/nfrund/authpanel/internal/rendering"
	"github.com/nfrund/authpanel/internal/websocket"
)

// Dependencies are the services the server wires into routes.
type Dependencies struct {
	Config    *config.Config
	Store     *pagestate.Store
	Bridge    *websocket.Bridge
	Bus       pubsub.Publisher
	Assets    *assets.Assets
	Renderer  *rendering.UniversalRenderer
	Validator *handlers.CustomValidator
	Auth      *handlers.AuthHandler
	Home      *handlers.HomeHandler
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	Cfg  *config.Config
	deps Dependencies
}

// New creates the echo instance, installs middleware and registers routes.
func New(deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = deps.Validator
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger := appmiddleware.FromContext(c.Request().Context())
			attrs := []any{"uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.Warn("Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("Request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	s := &Server{E: e, Cfg: deps.Config, deps: deps}
	s.RegisterRoutes()
	return s
}
