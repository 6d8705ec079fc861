package quest

// Error messages
const (
	ErrMsgBeginTxFailed   = "failed to begin transaction"
	ErrMsgCommitFailed    = "failed to commit transaction"
	ErrMsgLoadFailed      = "failed to load quest"
	ErrMsgLoadProfile     = "failed to load profile"
	ErrMsgLoadSkills      = "failed to load unlocked skills"
	ErrMsgCountFailed     = "failed to count completed quests"
	ErrMsgPersistFailed   = "failed to persist quest reward"
	ErrMsgCreateFailed    = "failed to create quest"
	ErrMsgTitleRequired   = "title is required"
	ErrMsgTitleTooLong    = "title must be at most %d characters"
	ErrMsgNegativeXPValue = "xp value %d must not be negative"
	ErrMsgXPValueTooLarge = "xp value %d exceeds %d"
	ErrMsgCompletedAtFmt  = "quest %s completed at %s"
)

// Log messages
const (
	LogMsgQuestCreated   = "Quest created"
	LogMsgQuestCompleted = "Quest completed"
	LogMsgLuckyProc      = "Lucky proc doubled quest reward"
)

// Limits
const (
	MaxTitleLength = 200
	MaxXPValue     = 10000
)

// SourceQuest tags level-up events raised by quest completion
const SourceQuest = "quest"
