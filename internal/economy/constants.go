package economy

// ==================== Error Messages ====================

// Formatted error messages for validation
const (
	ErrMsgInvalidAmountFmt     = "invalid amount: %d"
	ErrMsgAmountExceedsMaxFmt  = "amount %d exceeds maximum allowed (%d)"
	ErrMsgInsufficientFundsFmt = "costs %d gold, balance is %d"
)

// Database operation error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction"
	ErrMsgGetProfileFailed        = "failed to get profile"
	ErrMsgLookupReferenceFailed   = "failed to look up gold transaction reference"
	ErrMsgRecordTransactionFailed = "failed to record gold transaction"
	ErrMsgUpdateBalanceFailed     = "failed to update gold balance"
	ErrMsgCommitTransactionFailed = "failed to commit transaction"
	ErrMsgListTransactionsFailed  = "failed to list gold transactions"
)

// ==================== Log Messages ====================

const (
	LogMsgGoldSpent         = "Gold spent"
	LogMsgGoldGranted       = "Gold granted"
	LogMsgDuplicateRef      = "Gold transaction reference already recorded, skipping"
	LogMsgSpendRejected     = "Gold spend rejected"
	LogMsgHistoryLimitClamp = "Clamped gold history limit"
)

// MaxTransactionAmount bounds a single spend or grant
const MaxTransactionAmount = 1_000_000

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)
