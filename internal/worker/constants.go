package worker

import "time"

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, dropping job"
	LogMsgPoolStopped     = "Worker pool stopped, dropping job"
)

// ============================================================================
// Log Messages - Jobs
// ============================================================================

// Log messages for scheduled jobs
const (
	LogMsgReservationSweepDone = "Founder reservation sweep finished"
	LogMsgFounderGaugeUpdated  = "Founder slot gauge refreshed"
)

// Job names
const (
	JobNameReservationSweep = "founder_reservation_sweep"
	JobNameFounderGauge     = "founder_gauge_refresh"
)
