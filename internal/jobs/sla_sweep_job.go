package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcels/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// SlaSweepJob periodically scans for parcels past their delivery deadline and
// reports them. Runs every minute; an overdue parcel keeps being reported
// until it reaches a terminal status or the deadline is cleared, which keeps
// the signal alive across operator restarts.
type SlaSweepJob struct {
	handler queries.GetOverdueParcelsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSlaSweepJob creates a job that reports overdue parcels.
func NewSlaSweepJob(handler queries.GetOverdueParcelsQueryHandler, logger *slog.Logger) *SlaSweepJob {
	return &SlaSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "sla_sweep_job"),
	}
}

// Start begins the sweep, running at the top of every minute.
func (j *SlaSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "SLA sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *SlaSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "SLA sweep job stopped")
}

func (j *SlaSweepJob) sweep(ctx context.Context) {
	query, err := queries.NewGetOverdueParcelsQuery(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "SLA sweep query construction failed", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "SLA sweep failed", "error", err)
		return
	}

	if len(overdue) == 0 {
		return
	}

	j.logger.WarnContext(ctx, "Parcels past SLA deadline", "count", len(overdue))
	for _, p := range overdue {
		j.logger.WarnContext(ctx, "Parcel overdue",
			"parcel_id", p.ID.String(),
			"tracking_code", p.TrackingCode,
			"status", p.Status,
			"sla_due_at", p.SlaDueAt,
		)
	}
}
