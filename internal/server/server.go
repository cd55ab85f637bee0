// Package server exposes the optional Prometheus metrics endpoint.
//
// The server is started only when the application is launched with a metrics
// address. It serves /metrics in the Prometheus exposition format and
// /healthz for liveness probes, and shuts down cleanly when the benchmark
// context is canceled.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pbench/primebench/internal/logging"
)

// shutdownTimeout bounds how long a graceful shutdown may take.
const shutdownTimeout = 5 * time.Second

// Server is the HTTP server for metrics and health endpoints.
type Server struct {
	metrics    *Metrics
	logger     logging.Logger
	security   SecurityConfig
	httpServer *http.Server
}

// New creates a server listening on addr with default security settings.
func New(addr string, logger logging.Logger) *Server {
	s := &Server{
		metrics:  NewMetrics(),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Metrics returns the server's metric instruments so the benchmark harness
// can report run completions.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the server until ctx is canceled, then shuts it down gracefully.
// It blocks and returns any listener error other than http.ErrServerClosed.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("metrics server listening", logging.String("addr", s.httpServer.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("metrics server shutdown failed", err)
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error("metrics server failed", err)
		return err
	}
}

// metricsMiddleware tracks request counts and the in-flight gauge.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition endpoint. Only GET is
// allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth serves the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
