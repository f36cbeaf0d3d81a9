package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/der-stern/stern-erp/internal/dashboard"
	jobmetrics "github.com/der-stern/stern-erp/internal/jobs"
)

// DashboardWarmupJob recomputes the dashboard stats and re-primes the cache
// so the first request after a data change does not pay the aggregation cost.
type DashboardWarmupJob struct {
	Dashboard *dashboard.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

func NewDashboardWarmupJob(dashboardSvc *dashboard.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Dashboard: dashboardSvc,
		Logger:    logger,
		Metrics:   metrics,
	}
}

// Handle processes warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard warmup: handler not configured")
	}

	tracker := j.metrics().Track(TaskDashboardWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now()
	stats, err := j.Dashboard.Refresh(warmCtx)
	if err != nil {
		resultErr = err
		j.logger().Error("dashboard warmup failed", slog.Any("error", err))
		return resultErr
	}

	j.logger().Info("dashboard warmup completed",
		slog.Int("orders", stats.TotalOrders),
		slog.Int("active_orders", stats.ActiveOrders),
		slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
