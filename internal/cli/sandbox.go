package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/groundwork/pkg/adapters/sandbox"
)

// SandboxOptions configures the local API emulator.
type SandboxOptions struct {
	Addr       string
	DBPath     string // empty keeps state in memory
	FailTitles []string
}

// shutdownTimeout gives outstanding requests a deadline once ctx is done.
const shutdownTimeout = 5 * time.Second

// RunSandbox serves the emulator until ctx is cancelled. ready, if non-nil,
// receives the bound address once the listener is up.
func RunSandbox(ctx context.Context, opts SandboxOptions, logger *slog.Logger, ready chan<- string) error {
	srv, store, err := sandbox.Open(ctx, opts.DBPath,
		sandbox.WithFailingTitles(opts.FailTitles...),
		sandbox.WithLogger(logger))
	if err != nil {
		return err
	}
	defer store.Close()

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{Handler: srv.Handler(), ReadHeaderTimeout: 10 * time.Second}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpSrv.Serve(ln)
	}()

	addr := ln.Addr().String()
	logger.Info("Sandbox listening",
		"addr", addr,
		"team_id", sandbox.DefaultTeamID,
		"root_page_id", sandbox.DefaultRootID)
	if ready != nil {
		ready <- addr
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return httpSrv.Close()
		}
		logger.Info("Sandbox stopped")
		return nil
	}
}
