package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

type namedServer struct {
	name string
	srv  *http.Server
}

func (a *App) servers() []namedServer {
	return []namedServer{
		{name: "http", srv: a.httpServer},
		{name: "sse", srv: a.sseServer},
	}
}

// Start runs the API and stream servers. The returned channel is closed once
// a termination signal arrives; background jobs are cancelled at that point.
func (a *App) Start() <-chan struct{} {
	for _, s := range a.servers() {
		go func() {
			slog.Info("server listening", "name", s.name, "address", s.srv.Addr)
			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				slog.Error("server stopped unexpectedly", "name", s.name, "error", err)
				os.Exit(1)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()

		<-ctx.Done()
		slog.Info("termination signal received")

		a.cancel()
		close(done)
	}()

	return done
}

// ShutdownTimeout bounds Stop.
func (a *App) ShutdownTimeout() time.Duration {
	if d := a.config.GetSecond("app.server.shutdown_timeout_seconds"); d > 0 {
		return d
	}
	return defaultShutdownTimeout
}

// Stop drains the servers, waits for the issuer, stream and consumer
// goroutines, then releases resources in closer order.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	for _, s := range a.servers() {
		if err := s.srv.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to shutdown server", "name", s.name, "error", err)
		}
	}

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background goroutine failed", "error", err)
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application stopped")
}
