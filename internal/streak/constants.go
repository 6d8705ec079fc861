package streak

import "time"

// Error messages
const (
	ErrMsgInvalidDayBoundary = "invalid day boundary %q"
	ErrMsgLoadStreakFailed   = "failed to load streak state"
	ErrMsgBeginTxFailed      = "failed to begin transaction"
	ErrMsgCommitFailed       = "failed to commit transaction"
	ErrMsgUpdateFailed       = "failed to persist streak"
	ErrMsgFreezeCap          = "already holding %d of %d streak freezes"
	ErrMsgFreezeCost         = "a streak freeze costs %d xp, you have %d"
	ErrMsgInvalidStreakDay   = "streak day must be at least 1, got %d"
)

// Log messages
const (
	LogMsgStatusDegraded  = "Streak lookup failed, reporting safe default"
	LogMsgDailyClaimed    = "Daily reward claimed"
	LogMsgFreezeConsumed  = "Streak freeze consumed"
	LogMsgFreezePurchased = "Streak freeze purchased"
	LogMsgPublishFailed   = "Failed to publish streak event"
	LogMsgAlreadyClaimed  = "Daily reward already claimed"
	LogMsgFreezeRejected  = "Streak freeze purchase rejected"
)

// Status cache tuning
const (
	DefaultStatusCacheSize = 1024
	DefaultStatusCacheTTL  = 30 * time.Second
)

// Event source tag
const SourceDailyClaim = "daily_claim"
