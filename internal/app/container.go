// Package app wires the application's services together.
package app

import (
	"github.com/samber/do/v2"

	"github.com/nfrund/authpanel/internal/assets"
	"github.com/nfrund/authpanel/internal/config"
	"github.com/nfrund/authpanel/internal/forms"
	"github.com/nfrund/authpanel/internal/handlers"
	"github.com/nfrund/authpanel/internal/live"
	"github.com/nfrund/authpanel/internal/pagestate"
	"github.com/nfrund/authpanel/internal/pubsub"
	"github.com/nfrund/authpanel/internal/rendering"
	"github.com/nfrund/authpanel/internal/schedule"
	"github.com/nfrund/authpanel/internal/server"
	"github.com/nfrund/authpanel/internal/websocket"
)

// Options replace default services. Zero values keep the defaults.
type Options struct {
	// Scheduler runs the submit timers. Defaults to wall-clock timers.
	Scheduler schedule.Scheduler
}

// New builds the injector for cfg. Services are created lazily on first
// invoke.
func New(cfg *config.Config, opts Options) do.Injector {
	i := do.New()

	do.ProvideValue(i, cfg)

	sched := opts.Scheduler
	if sched == nil {
		sched = schedule.NewTimerScheduler()
	}
	do.ProvideValue(i, sched)

	do.Provide(i, func(do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(), nil
	})
	do.Provide(i, func(do.Injector) (*rendering.UniversalRenderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})
	do.Provide(i, func(do.Injector) (*forms.Validator, error) {
		return forms.NewValidator(), nil
	})
	do.Provide(i, func(do.Injector) (*pagestate.Store, error) {
		return pagestate.NewStore(), nil
	})
	do.Provide(i, func(i do.Injector) (*assets.Assets, error) {
		return assets.New(do.MustInvoke[*config.Config](i).StaticDir)
	})
	do.Provide(i, func(i do.Injector) (*live.Publisher, error) {
		return live.NewPublisher(
			do.MustInvoke[*pubsub.WatermillBridge](i),
			do.MustInvoke[*rendering.UniversalRenderer](i),
		), nil
	})
	do.Provide(i, func(i do.Injector) (*forms.Orchestrator, error) {
		return forms.NewOrchestrator(
			do.MustInvoke[*forms.Validator](i),
			do.MustInvoke[schedule.Scheduler](i),
			do.MustInvoke[*live.Publisher](i),
		), nil
	})
	do.Provide(i, func(i do.Injector) (*websocket.Bridge, error) {
		return websocket.NewBridge(do.MustInvoke[*pubsub.WatermillBridge](i)), nil
	})
	do.Provide(i, func(i do.Injector) (*handlers.AuthHandler, error) {
		return handlers.NewAuthHandler(
			do.MustInvoke[*forms.Validator](i),
			do.MustInvoke[*forms.Orchestrator](i),
			do.MustInvoke[*rendering.UniversalRenderer](i),
		), nil
	})
	do.Provide(i, func(i do.Injector) (*server.Server, error) {
		return server.New(server.Dependencies{
			Config:    do.MustInvoke[*config.Config](i),
			Store:     do.MustInvoke[*pagestate.Store](i),
			Bridge:    do.MustInvoke[*websocket.Bridge](i),
			Bus:       do.MustInvoke[*pubsub.WatermillBridge](i),
			Assets:    do.MustInvoke[*assets.Assets](i),
			Renderer:  do.MustInvoke[*rendering.UniversalRenderer](i),
			Validator: handlers.NewValidator(do.MustInvoke[*forms.Validator](i)),
			Auth:      do.MustInvoke[*handlers.AuthHandler](i),
			Home:      handlers.NewHomeHandler(),
		}), nil
	})

	return i
}

// Server resolves the fully wired HTTP server.
func Server(i do.Injector) (*server.Server, error) {
	return do.Invoke[*server.Server](i)
}
