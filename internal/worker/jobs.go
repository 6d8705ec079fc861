package worker

import (
	"context"

	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/metrics"
	"github.com/habitquest/habitquest-go/internal/subscription"
)

// ReservationSweepJob expires lapsed founder reservations
type ReservationSweepJob struct {
	svc subscription.Service
}

// NewReservationSweepJob creates the sweep job
func NewReservationSweepJob(svc subscription.Service) *ReservationSweepJob {
	return &ReservationSweepJob{svc: svc}
}

// Process runs one sweep
func (j *ReservationSweepJob) Process(ctx context.Context) error {
	n, err := j.svc.ExpireReservations(ctx)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgReservationSweepDone, "job", JobNameReservationSweep, "expired", n)
	return nil
}

// FounderGaugeJob refreshes the founder slots gauge from the store
type FounderGaugeJob struct {
	svc subscription.Service
}

// NewFounderGaugeJob creates the gauge refresh job
func NewFounderGaugeJob(svc subscription.Service) *FounderGaugeJob {
	return &FounderGaugeJob{svc: svc}
}

// Process reads availability and sets the gauge
func (j *FounderGaugeJob) Process(ctx context.Context) error {
	avail, err := j.svc.Availability(ctx)
	if err != nil {
		return err
	}
	metrics.FounderSlotsRemaining.Set(float64(avail.Remaining))
	logger.FromContext(ctx).Debug(LogMsgFounderGaugeUpdated, "job", JobNameFounderGauge, "remaining", avail.Remaining)
	return nil
}
