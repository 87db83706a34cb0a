package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/depictlang/depict/pkg/httpapi"
	"github.com/depictlang/depict/pkg/rendercache"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
}

// serveCommand creates the serve command, exposing the rendering pipeline
// as an HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rendering pipeline as an HTTP service",
		Long:  `serve starts an HTTP server exposing POST /render and GET /healthz. Rendered output is cached by source and options; pass --redis-addr to enable it, otherwise caching is disabled.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "address to listen on")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the render cache (disabled if empty)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	var cache rendercache.Cache = rendercache.NewNullCache()
	if opts.redisAddr != "" {
		cache = rendercache.NewRedisCache(opts.redisAddr, "depict:render:")
	}
	defer cache.Close()

	srv := httpapi.NewServer(c.newRunner(), cache)
	httpServer := &http.Server{
		Addr:    opts.addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	}
}
