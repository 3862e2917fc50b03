package server

import (
	"context"
	"errors"
	"log/slog"
)

// shutdown stops accepting requests, then closes the message bus.
func (s *Server) shutdown(ctx context.Context) error {
	slog.Info("Shutting down server")
	httpErr := s.E.Shutdown(ctx)
	busErr := s.deps.Bus.Close()
	if err := errors.Join(httpErr, busErr); err != nil {
		slog.Error("Shutdown finished with errors", "error", err)
		return err
	}
	slog.Info("Server stopped")
	return nil
}
