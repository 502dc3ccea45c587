package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/connection/domain"
	sloghttp "github.com/samber/slog-http"
)

// StateReporter reports the current connection state.
type StateReporter interface {
	State() domain.ConnectionState
}

// Server exposes health and metrics over HTTP
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server listening on port
func New(port int, state StateReporter, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	logger = logger.With("component", "http_server")
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      Handler(state, gatherer, logger),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Handler builds the routes behind Server.
func Handler(state StateReporter, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		handleHealth(w, state, logger)
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	return sloghttp.New(logger)(handler)
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type healthResponse struct {
	Status     string `json:"status"`
	Connection string `json:"connection"`
}

func handleHealth(w http.ResponseWriter, state StateReporter, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok", Connection: state.State().String()}); err != nil {
		logger.Error("Error writing health response", "error", err)
	}
}
