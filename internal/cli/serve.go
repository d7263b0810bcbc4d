package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/fsmsketch/pkg/adapters/http"
	"github.com/aretw0/fsmsketch/pkg/observability"
	"github.com/aretw0/fsmsketch/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewServer wires a session manager, its metrics and the JSON API into an
// http.Server listening on the configured address.
func NewServer(opts RunOptions) (*http.Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("error registering metrics: %w", err)
	}

	sessionOpts := sessionOptions(opts)
	hooks := metrics.Hooks()
	if debugEnabled(opts.logger()) {
		hooks = observability.Chain(hooks, createDebugHooks(opts.logger()))
	}
	sessionOpts = append(sessionOpts, session.WithLifecycleHooks(hooks))

	manager := session.NewManager(sessionOpts...)
	handler := httpAdapter.NewHandler(manager,
		httpAdapter.WithLogger(opts.logger()),
		httpAdapter.WithDefaultAlphabet(opts.Config.AlphabetSize),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
	)

	return &http.Server{
		Addr:              opts.Config.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, opts RunOptions) error {
	logger := opts.logger()
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Server Started", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Server Stopping", "reason", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		logger.Info("Server Stopped")
		return nil
	}
}
