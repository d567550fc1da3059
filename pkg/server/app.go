package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/customD73/picker2/internal/handler/api"
	"github.com/customD73/picker2/internal/service/schedule"
	"github.com/customD73/picker2/internal/usecase"
	pkgch "github.com/customD73/picker2/pkg/clickhouse"
	"github.com/customD73/picker2/pkg/config"
	xhttp "github.com/customD73/picker2/pkg/http"
	applogger "github.com/customD73/picker2/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	hub        *api.Hub
	proc       *usecase.Processor
	schedulers []*schedule.Scheduler
	chClient   *pkgch.Client
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler xhttp.Handler,
	hub *api.Hub,
	proc *usecase.Processor,
	schedulers []*schedule.Scheduler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:        cfg,
		log:        log,
		handler:    handler,
		hub:        hub,
		proc:       proc,
		schedulers: schedulers,
		chClient:   chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("backend", a.cfg.Backend.Type))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services: schedulers first so no new
// provider calls start, then the HTTP surface, then the sinks.
func (a *App) shutdown() error {
	for _, s := range a.schedulers {
		s.Close()
		a.log.Info("scheduler closed", applogger.String("provider", s.Name()))
	}

	if a.hub != nil {
		a.hub.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.proc != nil {
		a.proc.Close()
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
