package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const serverShutdownTimeout = 5 * time.Second

type backgroundServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// superviseAndServe runs supervise alongside server. A server that fails to
// serve cancels supervision, and supervision ending shuts the server down.
// server may be nil when HTTP is disabled.
func superviseAndServe(ctx context.Context, supervise func(context.Context) error, server backgroundServer) (superviseErr, serveErr error) {
	if server == nil {
		return supervise(ctx), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		serveErr = server.Start()
		return serveErr
	})
	g.Go(func() error {
		superviseErr = supervise(gctx)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Error shutting down HTTP server", "error", err)
		}
		return nil
	})
	_ = g.Wait()
	return superviseErr, serveErr
}
