package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/streamfront/internal/server"
)

const shutdownTimeout = 5 * time.Second

// Serve starts the HTTP server and blocks until it fails or the process is interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if port := cmd.Int("port"); port > 0 {
		r.config.Server.Port = port
	}
	if env := cmd.String("env"); env != "" {
		r.config.Server.Env = env
	}
	if err := r.config.Validate(); err != nil {
		return err
	}

	handler := server.New(server.Options{
		Config: r.config,
		API:    r.api,
		Pinger: r.api,
		Logger: r.logger,
	})

	httpServer := &http.Server{
		Addr:              r.config.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting server",
		"addr", httpServer.Addr, "env", r.config.Server.Env, "upstream", r.api.BaseURL())
	return r.run(ctx, httpServer)
}

// run serves until ctx is done, then shuts the server down gracefully.
func (r *Runner) run(ctx context.Context, httpServer *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
