package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/metrics"
	"github.com/fortuna/boxfinder/internal/ratelimit"
)

// Options wires the optional parts of the router.
type Options struct {
	Limiter ratelimit.Limiter
	Metrics *metrics.Metrics
	Checks  map[string]HealthCheck
	// Socket serves /ws/search when set.
	Socket http.Handler
}

// Server represents the REST API server
type Server struct {
	port   int
	server *http.Server
	logger *zap.Logger
}

// NewRouter builds the routes and middleware chain
func NewRouter(searcher Searcher, opts Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")
	handler := NewHandler(searcher, opts.Checks, logger)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(LoggingMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")
	}

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()
	if opts.Limiter != nil {
		api.Use(RateLimitMiddleware(opts.Limiter, opts.Metrics, logger))
	}
	api.HandleFunc("/search", handler.SearchPost).Methods("POST", "OPTIONS")
	api.HandleFunc("/search", handler.SearchGet).Methods("GET")

	if opts.Socket != nil {
		ws := router.PathPrefix("/ws").Subrouter()
		if opts.Limiter != nil {
			ws.Use(RateLimitMiddleware(opts.Limiter, opts.Metrics, logger))
		}
		ws.Handle("/search", opts.Socket).Methods("GET")
	}

	return router
}

// NewServer creates a new REST API server
func NewServer(port int, searcher Searcher, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		port:   port,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(searcher, opts, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.Int("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
