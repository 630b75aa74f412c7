package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aescanero/catalogo/internal/application/health"
	"github.com/aescanero/catalogo/internal/database"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Querier runs a fixed statement and returns its rows
type Querier interface {
	Query(ctx context.Context, statement string) (database.ResultSet, error)
}

// HealthChecker reports the latest database health check
type HealthChecker interface {
	GetStatus() health.Status
}

// Metrics records request and query metrics
type Metrics interface {
	RecordRequest(route string, status int)
	ObserveQueryDuration(route string, duration time.Duration)
	IncQueryErrors(route string, kind string)
}

// Server represents the HTTP gateway
type Server struct {
	router  *gin.Engine
	server  *http.Server
	port    int
	querier Querier
	health  HealthChecker
	metrics Metrics
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Port    int
	Querier Querier
	Health  HealthChecker
	Metrics Metrics
	// Gatherer backs /metrics. Defaults to the Prometheus default gatherer.
	Gatherer prometheus.Gatherer
	// Routes defaults to DefaultRoutes.
	Routes []QueryRoute
	Logger *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(requestLogger(logger))
	router.Use(metricsMiddleware(metrics))
	router.Use(corsMiddleware())
	router.Use(jsonBodyMiddleware())

	s := &Server{
		router:  router,
		port:    cfg.Port,
		querier: cfg.Querier,
		health:  cfg.Health,
		metrics: metrics,
		logger:  logger,
	}

	routes := cfg.Routes
	if routes == nil {
		routes = DefaultRoutes
	}

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s.setupRoutes(routes, gatherer)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return s
}

// setupRoutes configures the gateway routes
func (s *Server) setupRoutes(routes []QueryRoute, gatherer prometheus.Gatherer) {
	s.router.GET("/", s.handleRoot)

	for _, route := range routes {
		s.router.GET(route.Path, s.queryHandler(route))
	}

	// Health check
	s.router.GET("/health", s.handleHealth)

	// Metrics
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves until Shutdown is called
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}

	s.logger.Info("server listening", zap.String("addr", fmt.Sprintf("http://localhost:%d", s.port)))

	if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordRequest(string, int) {}
func (nopMetrics) ObserveQueryDuration(string, time.Duration) {}
func (nopMetrics) IncQueryErrors(string, string) {}
