// Package api provides the petservice REST API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/inheaven/petservice/pkg/observability"
)

// Server is the HTTP API server for the clinic.
type Server struct {
	mux          *http.ServeMux
	server       *http.Server
	logger       *slog.Logger
	appointments *AppointmentHandler
	users        *UserHandler
	health       *observability.HealthRegistry
	metrics      *observability.InMemoryMetrics
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server. A nil health registry or metrics
// leaves the matching endpoint reporting an empty result.
func NewServer(
	cfg ServerConfig,
	appointments *AppointmentHandler,
	users *UserHandler,
	health *observability.HealthRegistry,
	metrics *observability.InMemoryMetrics,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if health == nil {
		health = observability.NewHealthRegistry()
	}
	if metrics == nil {
		metrics = observability.NewInMemoryMetrics()
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		appointments: appointments,
		users:        users,
		health:       health,
		metrics:      metrics,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)

	a := s.appointments
	s.mux.HandleFunc("GET /api/v1/appointments", a.List)
	s.mux.HandleFunc("GET /api/v1/appointments/queue", a.Queue)
	s.mux.HandleFunc("GET /api/v1/appointments/search", a.Search)
	s.mux.HandleFunc("GET /api/v1/appointments/search-with-status", a.SearchWithStatus)
	s.mux.HandleFunc("GET /api/v1/appointments/next-for-doctor/{doctorId}", a.DispatchNext)
	s.mux.HandleFunc("POST /api/v1/appointments/user/{userId}", a.Create)
	s.mux.HandleFunc("GET /api/v1/appointments/user/{userId}", a.ListByOwner)
	s.mux.HandleFunc("GET /api/v1/appointments/{id}", a.Get)
	s.mux.HandleFunc("PUT /api/v1/appointments/{id}", a.Update)
	s.mux.HandleFunc("DELETE /api/v1/appointments/{id}", a.Delete)
	// A literal "{id}/check-in" pattern would conflict with "user/{userId}".
	s.mux.HandleFunc("POST /api/v1/appointments/{id}/{action}", a.Transition)
	s.mux.HandleFunc("PUT /api/v1/appointments/{id}/update-note", a.UpdateNote)

	s.mux.HandleFunc("POST /api/v1/users", s.users.Register)
	s.mux.HandleFunc("GET /api/v1/users", s.users.List)
	s.mux.HandleFunc("GET /api/v1/users/{id}", s.users.Get)
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return requestLogging(s.logger, s.mux)
}

// handleHealth reports 503 unless every component is healthy or degraded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.health.Check(r.Context())
	status := http.StatusOK
	if health.Status == observability.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}
