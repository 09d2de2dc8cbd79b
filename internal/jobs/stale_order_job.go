package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// EventPublisher routes canonical events to their handlers.
type EventPublisher interface {
	Publish(ctx context.Context, eventType events.EventType, notification events.Notification)
}

// StaleOrderJob periodically cancels orders that stayed pending for too long.
// It publishes a CancellationRequest per stale order instead of writing state
// directly, so expiry rides the same event path as every other status change.
type StaleOrderJob struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  EventPublisher
	ttl        time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleOrderJob creates a job that sweeps pending orders older than ttl.
// A zero ttl disables the job entirely.
func NewStaleOrderJob(
	uowFactory ports.UnitOfWorkFactory,
	publisher EventPublisher,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		ttl:        ttl,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "stale_order_job"),
	}
}

// Start schedules the sweep to run at the top of every minute.
// Does nothing when the job is disabled.
func (j *StaleOrderJob) Start() error {
	if j.ttl <= 0 {
		j.logger.InfoContext(context.Background(), "Stale order job disabled")
		return nil
	}

	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started",
		"ttl", j.ttl.String())
	return nil
}

// Stop stops the stale order job.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}

// RunOnce performs a single sweep: every pending order placed before
// now-ttl gets a cancellation request published for it.
func (j *StaleOrderJob) RunOnce(ctx context.Context) {
	repo := j.uowFactory.Create().OrderRepository()

	cutoff := time.Now().UTC().Add(-j.ttl)
	stale, err := repo.GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order sweep failed", "error", err)
		return
	}

	for _, aggregate := range stale {
		j.publisher.Publish(ctx, events.Cancelled,
			events.CancellationRequest{OrderID: aggregate.ID().String()})
	}

	if len(stale) > 0 {
		j.logger.InfoContext(ctx, "Requested cancellation of stale orders",
			"count", len(stale), "cutoff", cutoff)
	}
}
