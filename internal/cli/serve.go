package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/unabs"
	httpAdapter "github.com/aretw0/unabs/pkg/adapters/http"
	"github.com/aretw0/unabs/pkg/adapters/mcp"
	"github.com/aretw0/unabs/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the serve and mcp commands.
type ServeOptions struct {
	Port        int
	LibraryPath string

	// NoLibrary disables the program library endpoints.
	NoLibrary bool

	// Transport is "stdio" or "sse" (mcp only).
	Transport string
}

// Serve runs the HTTP API until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, env *Env, opts ServeOptions) error {
	if opts.Port == 0 {
		opts.Port = env.Config.Server.Port
	}

	sessions, closeStore, err := env.Sessions(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	rec := observability.NewRecorder(observability.DefaultCapacity)
	serverOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(env.Logger),
		httpAdapter.WithMetricsHandler(env.Metrics.Handler()),
		httpAdapter.WithRecorder(rec),
	}
	if env.Config.MaxSteps > 0 {
		serverOpts = append(serverOpts, httpAdapter.WithMaxBudget(env.Config.MaxSteps))
	}
	if !opts.NoLibrary {
		lib, err := env.Library(opts.LibraryPath)
		if err != nil {
			env.Logger.Warn("Program library unavailable", "path", opts.LibraryPath, "err", err)
		} else {
			serverOpts = append(serverOpts, httpAdapter.WithLibrary(lib))
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           httpAdapter.NewHandler(env.Engine(unabs.WithLifecycleHooks(rec.Hooks())), sessions, serverOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		env.Logger.Info("Starting unabs server", "address", srv.Addr, "store", describeBackend(env.Config.Store))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		env.Logger.Info("Shutdown signal received, stopping server")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		env.Logger.Info("Server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the Model Context Protocol server on the chosen transport.
func ServeMCP(ctx context.Context, env *Env, opts ServeOptions) error {
	if opts.Port == 0 {
		opts.Port = env.Config.Server.Port
	}

	mcpOpts := []mcp.Option{mcp.WithLogger(env.Logger)}
	if env.Config.MaxSteps > 0 {
		mcpOpts = append(mcpOpts, mcp.WithMaxSteps(env.Config.MaxSteps))
	}
	if !opts.NoLibrary {
		if lib, err := env.Library(opts.LibraryPath); err == nil {
			mcpOpts = append(mcpOpts, mcp.WithLibrary(lib))
		} else {
			env.Logger.Warn("Program library unavailable", "path", opts.LibraryPath, "err", err)
		}
	}
	srv := mcp.NewServer(env.Engine(), mcpOpts...)

	switch opts.Transport {
	case "", "stdio":
		env.Logger.Info("Starting unabs MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		env.Logger.Info("Starting unabs MCP server (SSE)", "port", opts.Port)
		if err := srv.ServeSSE(ctx, opts.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		env.Logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q: supported are stdio and sse", opts.Transport)
	}
}
