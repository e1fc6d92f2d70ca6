// Package httpapi exposes the server facade's RPC surface (§3/§6) as JSON
// over plain net/http, routed with the stdlib ServeMux pattern registry.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/corax26/servoscheduler/internal/server"
)

// Server is the HTTP transport for the actuator scheduler's RPC surface.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	handler *Handler
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer builds an HTTP server routing to facade.
func NewServer(cfg ServerConfig, facade *server.Server, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	s := &Server{
		mux:     mux,
		logger:  logger,
		handler: NewHandler(facade, logger),
	}
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /v1/actuators", s.handler.ListActuators)
	s.mux.HandleFunc("GET /v1/actuators/{id}/timeslots", s.handler.ListTimeSlots)
	s.mux.HandleFunc("POST /v1/actuators/{id}/timeslots", s.handler.AddTimeSlot)
	s.mux.HandleFunc("DELETE /v1/actuators/{id}/timeslots/{slotID}", s.handler.RemoveTimeSlot)
	s.mux.HandleFunc("PATCH /v1/actuators/{id}/timeslots/{slotID}/period", s.handler.SetTimePeriod)
	s.mux.HandleFunc("PUT /v1/actuators/{id}/timeslots/{slotID}/enabled", s.handler.SetEnabled)
	s.mux.HandleFunc("PUT /v1/actuators/{id}/timeslots/{slotID}/state", s.handler.SetActuatorState)
	s.mux.HandleFunc("POST /v1/actuators/{id}/timeslots/{slotID}/overrides", s.handler.AddTimeOverride)
	s.mux.HandleFunc("DELETE /v1/actuators/{id}/timeslots/{slotID}/overrides/{overrideID}", s.handler.RemoveTimeOverride)
	s.mux.HandleFunc("GET /v1/actuators/{id}/default-state", s.handler.GetDefaultState)
	s.mux.HandleFunc("PUT /v1/actuators/{id}/default-state", s.handler.SetDefaultState)
	s.mux.HandleFunc("PUT /v1/actuators/{id}/state", s.handler.SetState)
	s.mux.HandleFunc("GET /v1/actuators/{id}/schedule", s.handler.Schedule)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler returns the server's routed http.Handler, for tests that want to
// drive it with httptest rather than binding a real port.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the HTTP server until it errors or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting actuator scheduler HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down actuator scheduler HTTP server")
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
