package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler hands cron-triggered jobs to the worker pool
type Scheduler struct {
	cron *cron.Cron
	pool Enqueuer
	ctx  context.Context
}

// New creates a scheduler whose cron specs are read in loc
func New(ctx context.Context, pool Enqueuer, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		pool: pool,
		ctx:  ctx,
	}
}

// Schedule registers job under a standard cron spec or a descriptor such as "@every 5m"
func (s *Scheduler) Schedule(spec, name string, job worker.Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if !s.pool.Enqueue(job) {
			logger.FromContext(s.ctx).Warn(LogMsgJobSkipped, "job", name)
		}
	})
	if err != nil {
		return fmt.Errorf(ErrMsgInvalidSpecFmt, name, spec, err)
	}
	logger.FromContext(s.ctx).Info(LogMsgJobScheduled, "job", name, "spec", spec)
	return nil
}

// Start starts the cron loop
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron loop and waits for running triggers, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
