package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/der-stern/stern-erp/internal/app"
	"github.com/der-stern/stern-erp/internal/dashboard"
	jobmetrics "github.com/der-stern/stern-erp/internal/jobs"
	"github.com/der-stern/stern-erp/internal/masterdata/products"
	"github.com/der-stern/stern-erp/internal/platform/db"
	"github.com/der-stern/stern-erp/internal/sales/customers"
	"github.com/der-stern/stern-erp/internal/sales/orders"
	"github.com/der-stern/stern-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	metrics := jobmetrics.NewMetrics(nil)

	orderRepo := orders.NewRepository(pool)
	customerRepo := customers.NewRepository(pool)
	productRepo := products.NewRepository(pool)
	orderService := orders.NewService(orderRepo, customerRepo, productRepo)

	statsCache := dashboard.NewCache(redisClient, cfg.StatsCacheTTL)
	dashboardService := dashboard.NewService(orderRepo, productRepo, customerRepo, statsCache)

	overdueJob := jobs.NewPaymentOverdueJob(orderService, logger, metrics, cfg.PaymentDueDays)
	warmupJob := jobs.NewDashboardWarmupJob(dashboardService, logger, metrics)

	overdueTask, err := jobs.NewPaymentOverdueTask(jobs.PaymentOverduePayload{DueDays: cfg.PaymentDueDays})
	if err != nil {
		logger.Error("build overdue task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskPaymentOverdueSweep, Handler: overdueJob.Handle},
			{Type: jobs.TaskDashboardWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 1 * * *", Task: overdueTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "*/15 * * * *", Task: jobs.NewDashboardWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(2)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
