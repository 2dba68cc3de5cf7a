package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/ports"
)

// SequenceCleanupJob purges order-number counters for days past the retention
// window. Counters are only needed within their own calendar day; keeping a
// few days of history helps when investigating numbering complaints.
type SequenceCleanupJob struct {
	sequence      ports.OrderNumberSequence
	retentionDays int
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewSequenceCleanupJob creates the cleanup job. retentionDays controls how
// many past days of counters survive each run.
func NewSequenceCleanupJob(sequence ports.OrderNumberSequence, retentionDays int, logger *slog.Logger) *SequenceCleanupJob {
	return &SequenceCleanupJob{
		sequence:      sequence,
		retentionDays: retentionDays,
		cron:          cron.New(),
		logger:        logger.With("component", "sequence_cleanup_job"),
	}
}

// Start schedules the cleanup to run shortly after midnight every day.
func (j *SequenceCleanupJob) Start() error {
	_, err := j.cron.AddFunc("15 0 * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)

		purged, err := j.sequence.PurgeBefore(ctx, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "Sequence cleanup failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Purged expired order number counters",
			"purged", purged,
			"cutoff", cutoff.Format("2006-01-02"))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sequence cleanup job started (running daily)")
	return nil
}

// Stop stops the cleanup job.
func (j *SequenceCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Sequence cleanup job stopped")
}
