package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"RetailPrice/pkg/config"
	xhttp "RetailPrice/pkg/http"
	applogger "RetailPrice/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	closers    []io.Closer
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, httpServer *xhttp.Server) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
	}
}

// OnShutdown registers resources closed after the HTTP server has drained.
func (a *App) OnShutdown(c io.Closer) {
	if c != nil {
		a.closers = append(a.closers, c)
	}
}

// Server returns the HTTP server.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done or the listener fails, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("service started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("addr", a.httpServer.Addr()),
	)

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case runErr = <-a.httpServer.Errors():
		a.logger.Error("http server failed", applogger.Error(runErr))
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("resource close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	_ = a.logger.Close()
	return firstErr
}
