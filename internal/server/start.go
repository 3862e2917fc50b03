package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start runs the background services and the HTTP server until ctx is done,
// then shuts everything down.
func (s *Server) Start(ctx context.Context) error {
	if err := s.StartBackground(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", s.Cfg.Addr)
		if err := s.E.Start(s.Cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.shutdown(shutdownCtx)
}

// StartBackground starts the websocket bridge, the page janitor and the
// asset watcher. They stop when ctx is done.
func (s *Server) StartBackground(ctx context.Context) error {
	if err := s.deps.Bridge.Start(ctx); err != nil {
		return err
	}
	if err := s.deps.Assets.Watch(ctx); err != nil {
		return err
	}
	ttl := s.Cfg.PageIdleTTL
	go s.deps.Store.RunJanitor(ctx, janitorInterval(ttl), ttl, s.deps.Bridge.PageIDs)
	return nil
}

func janitorInterval(ttl time.Duration) time.Duration {
	if half := ttl / 2; half < time.Minute {
		return max(half, time.Second)
	}
	return time.Minute
}
