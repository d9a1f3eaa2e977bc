// Package api implements the compute service: an HTTP server exposing the
// sequence computation so the worker pool can offload it over the network.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/cvelab/collatzmgr/internal/config"
	"github.com/cvelab/collatzmgr/internal/logger"
)

// Server is the compute service HTTP server
type Server struct {
	cfg        config.ServerConfig
	router     *mux.Router
	httpServer *http.Server
	registry   *prometheus.Registry
	metrics    *metrics
	log        logger.Logger
}

// NewServer creates a configured but not yet started server
func NewServer(cfg config.ServerConfig) *Server {
	s := &Server{
		cfg:      cfg,
		router:   mux.NewRouter(),
		registry: prometheus.NewRegistry(),
		log:      logger.New("api"),
	}
	s.metrics = newMetrics(s.registry)
	s.routes()

	var handler http.Handler = s.router
	if cfg.EnableCORS {
		handler = cors.Default().Handler(handler)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// routes registers all endpoints
func (s *Server) routes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/collatz", s.handleCollatz).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// Handler returns the root handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until it fails or Shutdown is called
func (s *Server) Start() error {
	s.log.Info("compute service listening", logger.String("addr", s.cfg.Addr()))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down compute service")
	return s.httpServer.Shutdown(ctx)
}
