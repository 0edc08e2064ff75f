package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	cremahttp "github.com/aretw0/crema/pkg/adapters/http"
	"github.com/aretw0/crema/pkg/adapters/mcp"
)

// ShutdownTimeout bounds graceful HTTP shutdown.
const ShutdownTimeout = 5 * time.Second

// RunServe serves the HTTP API on addr until ctx is cancelled.
func RunServe(ctx context.Context, app *App, addr string) error {
	srv := &http.Server{
		Addr: addr,
		Handler: cremahttp.NewHandler(app.Translator,
			cremahttp.WithLogger(app.Logger),
			cremahttp.WithGatherer(app.Registry),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting crema server", "addr", addr, "mode", app.Translator.Mode())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		app.Logger.Info("crema server stopped gracefully", "reason", stopReason(signalOf(ctx)))
		return nil
	}
}

// RunMCP serves the MCP tools over stdio.
func RunMCP(app *App) error {
	app.Logger.Info("Starting crema MCP server (stdio)")
	return mcp.NewServer(app.Translator, app.Logger).ServeStdio()
}
