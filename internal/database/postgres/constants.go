package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a row references a missing profile
	PgErrorCodeForeignKeyViolation = "23503"
	// PgErrorCodeInvalidText is raised when an id is not a valid uuid
	PgErrorCodeInvalidText = "22P02"
)

// FounderSlotsLockKey is the transaction-scoped advisory lock serializing founder slot accounting
const FounderSlotsLockKey int64 = 0x68716673 // "hqfs"

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Error Messages - Profile Operations
const (
	ErrMsgFailedToInsertProfile    = "failed to insert profile"
	ErrMsgFailedToGetProfile       = "failed to get profile"
	ErrMsgFailedToUpdateProgress   = "failed to update progression"
	ErrMsgFailedToUpdateStreak     = "failed to update streak"
	ErrMsgFailedToGetStreak        = "failed to get streak state"
	ErrMsgFailedToQuerySkills      = "failed to query unlocked skills"
	ErrMsgFailedToUnlockSkill      = "failed to unlock skill"
	ErrMsgFailedToRecordDailyClaim = "failed to record daily claim"
)

// Error Messages - Gold Operations
const (
	ErrMsgFailedToRecordGold   = "failed to record gold transaction"
	ErrMsgFailedToQueryLedger  = "failed to query gold transactions"
	ErrMsgFailedToGetLedgerRef = "failed to get gold transaction by reference"
)

// Error Messages - Quest Operations
const (
	ErrMsgFailedToInsertQuest   = "failed to insert quest"
	ErrMsgFailedToGetQuest      = "failed to get quest"
	ErrMsgFailedToCompleteQuest = "failed to mark quest completed"
	ErrMsgFailedToCountQuests   = "failed to count completed quests"
)

// Error Messages - Founder Operations
const (
	ErrMsgFailedToLockSlots          = "failed to lock founder slots"
	ErrMsgFailedToCountSlots         = "failed to count founder slots"
	ErrMsgFailedToGetReservation     = "failed to get founder reservation"
	ErrMsgFailedToInsertReservation  = "failed to insert founder reservation"
	ErrMsgFailedToConfirmReservation = "failed to confirm founder reservation"
	ErrMsgFailedToExpireReservations = "failed to expire founder reservations"
	ErrMsgFailedToSetFounder         = "failed to set founder flag"
	ErrMsgFailedToMarkWebhook        = "failed to record processed webhook"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToMarshalEvent = "failed to marshal event"
	ErrMsgFailedToInsertEvent  = "failed to insert event"
	ErrMsgFailedToQueryEvents  = "failed to query events"
	ErrMsgFailedToDecodeEvent  = "failed to decode event"
	ErrMsgFailedToDeleteEvents = "failed to delete old events"
)
