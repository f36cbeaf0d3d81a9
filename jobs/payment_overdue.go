package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/der-stern/stern-erp/internal/jobs"
	"github.com/der-stern/stern-erp/internal/sales/orders"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// PaymentOverdueJob sweeps pending payments on orders older than the due
// window and flips them to Overdue.
type PaymentOverdueJob struct {
	Orders         *orders.Service
	Logger         *slog.Logger
	Metrics        *jobmetrics.Metrics
	DefaultDueDays int
}

func NewPaymentOverdueJob(orderSvc *orders.Service, logger *slog.Logger, metrics *jobmetrics.Metrics, dueDays int) *PaymentOverdueJob {
	return &PaymentOverdueJob{
		Orders:         orderSvc,
		Logger:         logger,
		Metrics:        metrics,
		DefaultDueDays: dueDays,
	}
}

// Handle processes overdue sweep tasks.
func (j *PaymentOverdueJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Orders == nil {
		return errors.New("payment overdue: handler not configured")
	}
	var payload PaymentOverduePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	dueDays := payload.DueDays
	if dueDays <= 0 {
		dueDays = j.DefaultDueDays
	}

	tracker := j.metrics().Track(TaskPaymentOverdueSweep)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	flipped, err := j.Orders.MarkOverduePayments(ctx, dueDays)
	if err != nil {
		resultErr = err
		j.logger().Error("payment overdue sweep failed", slog.Any("error", err))
		return resultErr
	}

	j.logger().Info("payment overdue sweep completed",
		slog.Int("due_days", dueDays), slog.Int64("flipped", flipped))
	return resultErr
}

func (j *PaymentOverdueJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *PaymentOverdueJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
