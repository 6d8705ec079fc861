package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/eventlog"
	"github.com/habitquest/habitquest-go/internal/scheduler"
	"github.com/habitquest/habitquest-go/internal/streak"
	"github.com/habitquest/habitquest-go/internal/subscription"
	"github.com/habitquest/habitquest-go/internal/worker"
)

// Background holds the worker pool and the cron scheduler feeding it
type Background struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// NewWorkerPool creates and starts the pool shared by announcements and cron jobs
func NewWorkerPool(ctx context.Context, cfg *config.Config) *worker.Pool {
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueue)
	pool.Start(ctx)
	return pool
}

// StartBackground schedules the founder maintenance jobs and the event log
// cleanup on pool. Cron specs are read in the day-boundary zone. A nil events
// service skips the cleanup.
func StartBackground(ctx context.Context, cfg *config.Config, pool *worker.Pool, founders subscription.Service, events eventlog.Service, cal streak.Calendar) (*Background, error) {
	sched := scheduler.New(ctx, pool, cal.Location())

	if err := sched.Schedule(cfg.CronReservationSweep, worker.JobNameReservationSweep, worker.NewReservationSweepJob(founders)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedScheduleJob, err)
	}
	if err := sched.Schedule(cfg.CronFounderGauge, worker.JobNameFounderGauge, worker.NewFounderGaugeJob(founders)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedScheduleJob, err)
	}

	if events != nil {
		cleanup := eventlog.NewCleanupJob(events, cfg.EventLogRetentionDays)
		if err := sched.Schedule(cfg.CronEventLogCleanup, JobNameEventLogCleanup, cleanup); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedScheduleJob, err)
		}
	}

	sched.Start()
	slog.Info(LogMsgBackgroundStarted, "workers", cfg.WorkerCount, "queue", cfg.WorkerQueue)

	return &Background{Pool: pool, Scheduler: sched}, nil
}
