// Package main runs the event analytics platform HTTP server with graceful
// shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eventlens/backend/config"
	"github.com/eventlens/backend/internal/eventanalytics"
	"github.com/eventlens/backend/internal/events"
	"github.com/eventlens/backend/internal/export"
	"github.com/eventlens/backend/internal/middleware"
	"github.com/eventlens/backend/internal/registrations"
	"github.com/eventlens/backend/internal/submissions"
	"github.com/eventlens/backend/internal/workspaceanalytics"
	"github.com/eventlens/backend/internal/workspaces"
	"github.com/eventlens/backend/pkg/database"
	"github.com/eventlens/backend/pkg/metrics"
	"github.com/eventlens/backend/pkg/queue"
	"github.com/eventlens/backend/pkg/redis"
	"github.com/eventlens/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// Record stores
	eventRepo := events.NewRepository(pool)
	registrationRepo := registrations.NewRepository(pool)
	submissionRepo := submissions.NewRepository(pool)
	workspaceRepo := workspaces.NewRepository(pool)

	// Analytics engines
	eventAnalytics := eventanalytics.NewService(eventRepo, registrationRepo, submissionRepo, logger)
	workspaceAnalytics := workspaceanalytics.NewService(workspaceRepo, logger,
		workspaceanalytics.WithThresholds(workspaceanalytics.Thresholds{
			MemberOverload:     cfg.Analytics.MemberOverloadThreshold,
			MemberOverloadHigh: cfg.Analytics.MemberOverloadHighThreshold,
			TaskCapacity:       cfg.Analytics.RecommendedTaskCapacity,
			WorkloadDisplayCap: cfg.Analytics.WorkloadDisplayCap,
			CriticalWindow:     cfg.Analytics.CriticalDeadlineWindow,
			ActivityWindow:     cfg.Analytics.ActivityWindow,
			WeightOverdue:      cfg.Analytics.HealthWeightOverdue,
			WeightBlocked:      cfg.Analytics.HealthWeightBlocked,
			WeightUnassigned:   cfg.Analytics.HealthWeightUnassigned,
			WeightCritical:     cfg.Analytics.HealthWeightCritical,
			BottleneckPenalty:  cfg.Analytics.HealthPenaltyPerBottleneck,
		}),
	)

	// Handlers
	eventHandler := events.NewHandler(eventRepo)
	eventAnalyticsHandler := eventanalytics.NewHandler(eventAnalytics, logger)
	workspaceAnalyticsHandler := workspaceanalytics.NewHandler(workspaceAnalytics, logger)
	jobQueue := queue.NewQueue(rdb.Client, logger)
	exportHandler := export.NewHandler(jobQueue, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	{
		eventHandler.RegisterRoutes(api)
		eventAnalyticsHandler.RegisterRoutes(api)
		workspaceAnalyticsHandler.RegisterRoutes(api)
		exportHandler.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
