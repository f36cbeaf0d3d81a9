package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskPaymentOverdueSweep flags pending payments past their due window.
	TaskPaymentOverdueSweep = "payments:overdue_sweep"
	// TaskDashboardWarmup recomputes and re-primes the dashboard stats cache.
	TaskDashboardWarmup = "dashboard:warmup"
)

// PaymentOverduePayload configures the overdue sweep. A zero DueDays falls
// back to the configured default.
type PaymentOverduePayload struct {
	DueDays int `json:"due_days"`
}

func NewPaymentOverdueTask(payload PaymentOverduePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPaymentOverdueSweep, data), nil
}

func NewDashboardWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskDashboardWarmup, nil)
}
