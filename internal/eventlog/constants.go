package eventlog

// Defaults
const (
	DefaultRetentionDays = 30
)

// Log messages - service events
const (
	LogMsgEventPayloadNotObject = "Event payload is not an object, skipping log"
	LogMsgFailedToLogEvent      = "Failed to log event to database"
	LogMsgEventLogged           = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Error messages
const (
	ErrMsgInvalidRetention = "retention must be at least one day"
	ErrMsgUserIDRequired   = "user_id is required"
	ErrMsgQueryFailed      = "failed to load activity"
)
