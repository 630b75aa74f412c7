package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/catalogo/internal/application/health"
	"github.com/aescanero/catalogo/internal/config"
	"github.com/aescanero/catalogo/internal/database"
	"github.com/aescanero/catalogo/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/catalogo/pkg/api/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting catalog API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Connection provider; no network I/O until first use
	provider, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("failed to create database provider", zap.Error(err))
	}
	logger.Info("database provider ready",
		zap.String("driver", provider.Driver()),
		zap.String("database", cfg.Database.Name))

	metricsCollector := prometheus.NewCollector(promclient.DefaultRegisterer)
	if err := metricsCollector.RegisterDatabase(provider.DB(), cfg.Database.Name); err != nil {
		logger.Warn("failed to register database pool metrics", zap.Error(err))
	}

	monitor := health.NewMonitor(
		provider,
		metricsCollector,
		cfg.Database.HealthCheckInterval,
		cfg.Database.HealthCheckTimeout,
		logger,
	)

	httpServer := http.NewServer(&http.Config{
		Port:    cfg.HTTPPort,
		Querier: provider,
		Health:  monitor,
		Metrics: metricsCollector,
		Logger:  logger,
	})

	// Startup health check; a failure is logged and serving continues
	go monitor.Check(context.Background())
	monitor.Start()

	logger.Info("catalog API started",
		zap.String("http_addr", cfg.GetHTTPAddr()),
		zap.Duration("health_check_interval", cfg.Database.HealthCheckInterval))

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	monitor.Stop()

	if err := provider.Close(); err != nil {
		logger.Error("database close error", zap.Error(err))
	}

	logger.Info("catalog API shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
