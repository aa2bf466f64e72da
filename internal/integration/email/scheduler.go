package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/digest"
)

// DigestRunner queues the weekly digest. Implemented by digest.QueueWeeklyDigestUseCase.
type DigestRunner interface {
	Execute(ctx context.Context) (*digest.QueueWeeklyDigestOutput, error)
}

// Scheduler triggers the weekly digest on a fixed tick. The use case itself
// skips users who already got one inside the digest interval, so ticking more
// often than weekly is safe.
type Scheduler struct {
	runner   DigestRunner
	interval time.Duration
}

// NewScheduler creates a new digest scheduler.
func NewScheduler(runner DigestRunner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		runner:   runner,
		interval: interval,
	}
}

// Start runs the digest immediately and then on every tick until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Digest scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Digest scheduler shutting down")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single digest pass and logs the outcome.
func (s *Scheduler) RunOnce(ctx context.Context) {
	output, err := s.runner.Execute(ctx)
	if err != nil {
		slog.Error("Weekly digest run failed", "error", err)
		return
	}
	slog.Debug("Weekly digest run", "queued", output.Queued, "skipped", output.Skipped, "failed", output.Failed)
}
