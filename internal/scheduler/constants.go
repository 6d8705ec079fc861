package scheduler

// Log messages
const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgJobSkipped   = "Scheduled job not enqueued"
)

// ErrMsgInvalidSpecFmt wraps cron parse failures
const ErrMsgInvalidSpecFmt = "invalid schedule for %s (%q): %w"
