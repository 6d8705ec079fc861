package event

import "time"

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Retry configuration
const (
	// RetryQueueBufferSize is the buffer size for the retry queue
	RetryQueueBufferSize = 1000

	// RetryInitialDelay is the delay before the first retry
	RetryInitialDelay = 2 * time.Second

	// RetryMaxAttempts is the default maximum number of retries
	RetryMaxAttempts = 5
)

// Dead-letter errors
const (
	ErrMsgOpenDeadLetter   = "failed to open dead letter file"
	ErrMsgEncodeDeadLetter = "failed to encode dead letter entry"
)

// DeadLetterFilePermissions is the file permission mode for dead-letter files
const DeadLetterFilePermissions = 0o644

// Log messages
const (
	LogMsgEventPublishFailed  = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull      = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterFailed    = "Failed to write to dead letter"
	LogMsgEventDeadLettered   = "Event dead-lettered"
	LogMsgEventRetryExhausted = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed    = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded = "Event retry succeeded"
	LogMsgShutdownTimeout     = "Resilient publisher shutdown timed out"
	LogMsgPublisherStopped    = "Resilient publisher stopped"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles the base delay for every retry: base, 2*base, 4*base...
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
