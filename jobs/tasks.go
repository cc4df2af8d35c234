package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup refreshes the cached receivables dashboard.
	TaskDashboardWarmup = "receivables:dashboard_warmup"
)

// DashboardWarmupPayload configures one warmup run.
type DashboardWarmupPayload struct {
	// Reason is recorded in logs: "cron", "snapshot" or manual.
	Reason string `json:"reason"`
}

// NewDashboardWarmupTask constructs an Asynq task.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}
