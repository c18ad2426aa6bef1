package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"FinScore/pkg/config"
	xhttp "FinScore/pkg/http"
	applogger "FinScore/pkg/logger"
)

// App encapsulates the HTTP scoring service lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{cfg: cfg, l: l, handler: handler}
}

// Server builds the HTTP server on first use.
func (a *App) Server() *xhttp.Server {
	if a.httpServer == nil {
		a.httpServer = xhttp.NewServer(a.handler, a.l,
			xhttp.WithPort(a.cfg.Server.Port),
			xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
			xhttp.WithSlowRequest(a.cfg.Server.SlowRequest),
			xhttp.WithRequestTimeout(a.cfg.Server.RequestTimeout),
			xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
		)
	}
	return a.httpServer
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done, then shuts down gracefully.
func (a *App) RunContext(ctx context.Context) error {
	if a.handler == nil {
		return errors.New("server: no http handler")
	}
	srv := a.Server()
	if err := srv.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("finscore started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("weight_mode", a.cfg.Scoring.WeightMode))

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops the HTTP server. Infrastructure clients are closed by the
// cleanup returned from the injector.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.l.Info("shutdown complete")
	return nil
}
