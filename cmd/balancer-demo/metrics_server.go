package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/arloliu/balancer/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsServer serves a Prometheus registry via HTTP.
type metricsServer struct {
	server *http.Server
	logger types.Logger
}

// newMetricsServer creates a metrics server for reg.
//
// Parameters:
//   - addr: Address to listen on (e.g., ":9090")
//   - reg: Registry to expose on /metrics
//   - logger: Logger for server errors
//
// Returns:
//   - *metricsServer: Initialized, not yet listening server
func newMetricsServer(addr string, reg *prometheus.Registry, logger types.Logger) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/health", healthHandler)

	return &metricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background until Shutdown.
func (s *metricsServer) Start() {
	s.logger.Info("starting metrics server", "addr", s.server.Addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", "error", err)
		}
	}()
}

// Shutdown gracefully shuts down the server.
func (s *metricsServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}

	return nil
}

// healthHandler handles health check requests.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK\n")
}
