package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// AuditPruner removes audit entries older than the given number of days.
type AuditPruner interface {
	Prune(ctx context.Context, days int) (int64, error)
}

// AuditRetentionJob applies the audit retention policy.
type AuditRetentionJob struct {
	Audit  AuditPruner
	Logger *slog.Logger
}

func NewAuditRetentionJob(audit AuditPruner, logger *slog.Logger) *AuditRetentionJob {
	return &AuditRetentionJob{Audit: audit, Logger: logger}
}

// Handle executes the retention sweep.
func (j *AuditRetentionJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Audit == nil {
		return errors.New("audit retention: handler not configured")
	}
	var payload AuditRetentionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Days <= 0 {
		return asynq.SkipRetry
	}

	start := time.Now()
	removed, err := j.Audit.Prune(ctx, payload.Days)
	if err != nil {
		j.logger().Error("retention sweep failed", slog.Any("error", err))
		return err
	}
	j.logger().Info("completed retention sweep",
		slog.Int64("removed", removed),
		slog.Int("days", payload.Days),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *AuditRetentionJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskTypeAuditRetention))
	}
	return slog.Default().With(slog.String("job", TaskTypeAuditRetention))
}
