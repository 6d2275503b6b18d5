package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/DanielMat97/BackendExtorApp/internal/api"
	"github.com/DanielMat97/BackendExtorApp/internal/api/handlers/http/system"
	"github.com/DanielMat97/BackendExtorApp/internal/config"
	"github.com/DanielMat97/BackendExtorApp/internal/metrics"
	"github.com/DanielMat97/BackendExtorApp/internal/redis"
	"github.com/DanielMat97/BackendExtorApp/internal/service"
	"github.com/DanielMat97/BackendExtorApp/internal/storage/postgres"
	"github.com/DanielMat97/BackendExtorApp/pkg/logger"
)

var (
	_ service.ReportCache = (*redis.ReportCache)(nil)
	_ service.AuditQueue  = (*redis.AuditQueue)(nil)
	_ service.AuditSource = (*redis.AuditQueue)(nil)

	_ service.IntakeMetrics = (*metrics.Collector)(nil)
)

type Components struct {
	logger      *slog.Logger
	HttpServer  *api.Server
	Postgres    *postgres.Postgres
	Redis       *redis.Redis
	AuditSender *service.AuditSender
	Metrics     *metrics.Collector

	workers sync.WaitGroup
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	checks := map[string]system.Pinger{"postgres": storage.Pool}

	var (
		redisClient *redis.Redis
		cache       service.ReportCache
		queue       service.AuditQueue
		sender      *service.AuditSender
	)
	if !cfg.Redis.Disabled {
		logger.Info("Initializing Redis")
		redisClient, err = redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			storage.Pool.Close()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		checks["redis"] = system.PingFunc(func(ctx context.Context) error {
			return redisClient.Client.Ping(ctx).Err()
		})

		cache = redis.NewReportCache(redisClient)
		if cfg.AuditEnabled() {
			auditQueue := redis.NewAuditQueue(redisClient.Client, cfg.Audit.QueueKey)
			queue = auditQueue
			sender = service.NewAuditSender(logger, cfg.Audit, auditQueue)
		}
	} else {
		logger.Warn("Redis disabled: status cache and audit forwarding are off")
	}

	collector := metrics.NewCollector()

	intakeSvc := service.NewIntakeService(
		storage.ReportStore(),
		service.NewAuditLog(logger, queue),
		collector,
		logger,
		service.IntakeConfig{MaxAttempts: cfg.Intake.MaxAttempts, Location: loc},
	)
	lookupSvc := service.NewLookupService(storage.ReportStore(), cache, cfg.Redis.CacheTTL, logger)
	querySvc := service.NewQueryService(storage.ReportStore(), logger, loc, nil)
	statsSvc := service.NewStatsService(storage.Stats(), nil)

	srv := service.NewService(intakeSvc, lookupSvc, querySvc, statsSvc)

	httpServer, err := api.NewServer(cfg, logger, srv, collector, checks)
	if err != nil {
		storage.Pool.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, fmt.Errorf("failed to init http server: %w", err)
	}
	logger.Info("Initialized server")

	return &Components{
		logger:      logger,
		HttpServer:  httpServer,
		Postgres:    storage,
		Redis:       redisClient,
		AuditSender: sender,
		Metrics:     collector,
	}, nil
}

// StartWorkers launches background loops bound to ctx.
func (c *Components) StartWorkers(ctx context.Context) {
	if c.AuditSender == nil {
		return
	}
	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		c.AuditSender.Run(ctx)
	}()
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

// ShutdownAll waits for workers, whose context must already be canceled,
// then closes the stores.
func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("component shutdown started")

	c.workers.Wait()

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped",
		slog.Duration("latency", time.Since(start)))
}
