package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/fulingwei1/non-standard-automation-pms-sub011/internal/jobs"
	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/receivables"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// DashboardWarmupJob recomputes the receivables dashboard into the
// cache on a fixed cadence. The refresh timer lives here, at the
// boundary; the engine itself stays a pure function of its snapshot.
type DashboardWarmupJob struct {
	Service *receivables.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(service *receivables.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Service: service,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Reason == "" {
		payload.Reason = "cron"
	}

	tracker := j.metrics().Track(TaskDashboardWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	logger.Info("starting dashboard warmup")

	warmCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := j.now()
	if err := j.Service.RestoreSnapshot(warmCtx); err != nil {
		resultErr = err
		logger.Error("restore snapshot", slog.Any("error", err))
		return resultErr
	}
	dashboard, err := j.Service.Dashboard(warmCtx)
	if err != nil {
		resultErr = err
		logger.Error("warm dashboard", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed dashboard warmup",
		slog.String("snapshot_id", dashboard.SnapshotID),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *DashboardWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
