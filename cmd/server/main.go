package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/authpanel/internal/app"
	"github.com/nfrund/authpanel/internal/config"
	"github.com/nfrund/authpanel/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.LogSummary(logging.New(cfg.LogFormat, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := app.Server(app.New(cfg, app.Options{}))
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server gracefully stopped")
}
