package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/potterlabs/video-orchestrator/config"
	"github.com/potterlabs/video-orchestrator/internal/health"
	"github.com/potterlabs/video-orchestrator/internal/interface/http/handler"
	"github.com/potterlabs/video-orchestrator/internal/interface/http/middleware"
	"github.com/potterlabs/video-orchestrator/internal/orchestration"
	"github.com/potterlabs/video-orchestrator/internal/registry"
	"github.com/potterlabs/video-orchestrator/internal/router"
	"github.com/potterlabs/video-orchestrator/internal/transformer"
)

// Version and BuildTime are set during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting video orchestrator",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("environment", string(cfg.App.Environment)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	capabilityRegistry := registry.Load(cfg.Orchestration.CapabilitiesPath, logger)
	healthChecker := health.New(cfg.Orchestration.NodeAPIURL, cfg.Orchestration.APIKey, capabilityRegistry, logger)
	videoRouter := router.New(capabilityRegistry)
	configTransformer := transformer.New()
	downstreamClient := orchestration.NewHTTPDownstreamClient(cfg.Orchestration.NodeAPIURL, cfg.Orchestration.APIKey)

	promRegistry := prometheus.NewRegistry()
	metrics := orchestration.NewMetrics(promRegistry)

	orchestrationService := orchestration.New(
		capabilityRegistry,
		healthChecker,
		videoRouter,
		configTransformer,
		downstreamClient,
		metrics,
		logger,
	)

	orchestrationHandler := handler.NewOrchestrationHandler(orchestrationService)
	loggingMiddleware := middleware.NewLoggingMiddleware(logger)

	ginRouter := setupRouter(cfg, orchestrationHandler, loggingMiddleware, promRegistry)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      ginRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server starting", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// initLogger initializes the zap logger
func initLogger(cfg *config.Config) *zap.Logger {
	var zapConfig zap.Config

	if cfg.IsDevelopment() {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.TimeKey = "timestamp"
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	orchestrationHandler *handler.OrchestrationHandler,
	loggingMiddleware *middleware.LoggingMiddleware,
	promRegistry *prometheus.Registry,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(loggingMiddleware.Logger())
	r.Use(loggingMiddleware.Recovery())
	r.Use(middleware.CORS(corsConfigFrom(cfg.CORS)))

	r.GET("/health", orchestrationHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	r.POST("/orchestrate/video", orchestrationHandler.OrchestrateVideo)
	r.POST("/analyze/request", orchestrationHandler.AnalyzeRequest)
	r.GET("/providers/status", orchestrationHandler.ProvidersStatus)
	r.GET("/providers/capabilities", orchestrationHandler.ProvidersCapabilities)
	r.POST("/batch/orchestrate", orchestrationHandler.BatchOrchestrate)

	return r
}

// corsConfigFrom adapts the loaded CORS configuration into the middleware's
// shape, layering it onto the package defaults for the fields config.go
// does not expose (expose-headers, credentials, max-age).
func corsConfigFrom(cfg config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = cfg.AllowedMethods
	corsConfig.AllowHeaders = cfg.AllowedHeaders
	return corsConfig
}
