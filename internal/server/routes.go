package server

import (
	"github.com/labstack/echo/v4"

	appmiddleware "github.com/nfrund/authpanel/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	auth := s.deps.Auth
	rateLimiter := appmiddleware.RateLimiter(s.Cfg.SubmitRateLimit)

	s.E.GET("/", s.deps.Home.HomeGet)
	s.E.GET("/health", s.deps.Home.HealthGet)
	s.deps.Assets.Register(s.E, "/static")

	g := s.E.Group("/auth", appmiddleware.Page(s.deps.Store))
	g.GET("", auth.PageGet)
	g.POST("/strength", auth.StrengthPost)
	g.POST("/toggle", auth.TogglePost)
	g.POST("/:form/fields/:field", auth.FieldPost)
	g.POST("/:form/submit", auth.SubmitPost, rateLimiter)
	g.GET("/ws", s.deps.Bridge.Handler(pageID))
}

func pageID(c echo.Context) (string, bool) {
	p, ok := appmiddleware.PageFrom(c)
	if !ok {
		return "", false
	}
	return p.ID, true
}
