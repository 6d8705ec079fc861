package bootstrap

import "time"

// File System Permissions
const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingHabitQuest  = "Starting HabitQuest"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Event system defaults
const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Skill catalog messages
const (
	LogMsgCatalogDefault     = "No skill catalog path configured, using built-in catalog"
	ErrMsgFailedLoadCatalog  = "failed to load skill catalog"
	ErrMsgInvalidPolicy      = "invalid doubler policy"
	ErrMsgInvalidDayBoundary = "invalid day boundary time zone"
)

// Cache sizes
const (
	ProfileCacheSize = 1024
	StreakCacheSize  = 1024
)

// Rate limiter messages
const (
	LogMsgRateLimitRedis   = "Rate limiting backed by redis"
	LogMsgRateLimitMemory  = "Rate limiting backed by in-process store"
	LogMsgRedisUnreachable = "Redis unreachable, falling back to in-process rate limiting"
	RedisPingTimeout       = 3 * time.Second
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgProfileInvalidationWired   = "Profile cache invalidation subscribed"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgAnnouncerRegistered        = "Discord announcer registered"
	LogMsgAnnouncerDisabled          = "Discord webhook not configured, announcements disabled"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedCreateDiscordSession = "failed to create discord session"
)

// Background job messages
const (
	ErrMsgFailedScheduleJob = "failed to schedule background job"
	JobNameEventLogCleanup  = "event_log_cleanup"
	LogMsgBackgroundStarted = "Background workers started"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgSchedulerStopFailed        = "Scheduler shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgRedisCloseFailed           = "Redis client close failed"
)
