// Package main runs the background job worker (report export to S3).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eventlens/backend/config"
	"github.com/eventlens/backend/internal/eventanalytics"
	"github.com/eventlens/backend/internal/events"
	"github.com/eventlens/backend/internal/export"
	"github.com/eventlens/backend/internal/registrations"
	"github.com/eventlens/backend/internal/submissions"
	"github.com/eventlens/backend/internal/workspaceanalytics"
	"github.com/eventlens/backend/internal/workspaces"
	"github.com/eventlens/backend/pkg/database"
	"github.com/eventlens/backend/pkg/queue"
	"github.com/eventlens/backend/pkg/redis"
	"github.com/eventlens/backend/pkg/storage"
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

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	s3Client, err := storage.NewS3(ctx, storage.S3Config{
		Region:               cfg.AWS.Region,
		AccessKeyID:          cfg.AWS.AccessKeyID,
		SecretAccessKey:      cfg.AWS.SecretAccessKey,
		ExportsBucket:        cfg.AWS.ExportsBucket,
		PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
	}, logger)
	if err != nil {
		logger.Fatal("s3", zap.Error(err))
	}

	eventRepo := events.NewRepository(pool)
	registrationRepo := registrations.NewRepository(pool)
	submissionRepo := submissions.NewRepository(pool)
	workspaceRepo := workspaces.NewRepository(pool)

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

	jobQueue := queue.NewQueue(rdb.Client, logger)
	processor := export.NewProcessor(eventAnalytics, workspaceAnalytics, s3Client, jobQueue, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	logger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
