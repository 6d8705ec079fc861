package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Profile errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgUserAlreadyExists = "user already exists"

	// Quest errors
	ErrMsgQuestNotFound         = "quest not found"
	ErrMsgQuestAlreadyCompleted = "quest already completed"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInsufficientXP    = "insufficient xp"
	ErrMsgLedgerRefNotFound = "gold transaction reference not found"

	// Streak errors
	ErrMsgAlreadyClaimedToday = "daily reward already claimed today"
	ErrMsgFreezeCapReached    = "streak freeze limit reached"

	// Skill errors
	ErrMsgSkillNotFound = "skill not found"

	// Founder errors
	ErrMsgFounderSoldOut          = "founder spots sold out"
	ErrMsgAlreadyFounder          = "user is already a founder"
	ErrMsgReservationNotFound     = "founder reservation not found"
	ErrMsgWebhookAlreadyHandled   = "webhook event already processed"
	ErrMsgInvalidWebhookSignature = "invalid webhook signature"

	// Input errors
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgInvalidDifficulty = "invalid difficulty"
	ErrMsgNegativeXP        = "xp must not be negative"

	// Database/System errors
	ErrMsgStoreUnavailable = "store unavailable"
	ErrMsgTxClosed         = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrUserAlreadyExists = errors.New(ErrMsgUserAlreadyExists)

	ErrQuestNotFound         = errors.New(ErrMsgQuestNotFound)
	ErrQuestAlreadyCompleted = errors.New(ErrMsgQuestAlreadyCompleted)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientXP    = errors.New(ErrMsgInsufficientXP)
	ErrLedgerRefNotFound = errors.New(ErrMsgLedgerRefNotFound)

	ErrAlreadyClaimedToday = errors.New(ErrMsgAlreadyClaimedToday)
	ErrFreezeCapReached    = errors.New(ErrMsgFreezeCapReached)

	ErrSkillNotFound = errors.New(ErrMsgSkillNotFound)

	ErrFounderSoldOut          = errors.New(ErrMsgFounderSoldOut)
	ErrAlreadyFounder          = errors.New(ErrMsgAlreadyFounder)
	ErrReservationNotFound     = errors.New(ErrMsgReservationNotFound)
	ErrWebhookAlreadyHandled   = errors.New(ErrMsgWebhookAlreadyHandled)
	ErrInvalidWebhookSignature = errors.New(ErrMsgInvalidWebhookSignature)

	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrInvalidDifficulty = errors.New(ErrMsgInvalidDifficulty)
	ErrNegativeXP        = errors.New(ErrMsgNegativeXP)
)

// FailureKind classifies a Failure
type FailureKind string

const (
	KindValidation           FailureKind = "validation_error"
	KindInsufficientResource FailureKind = "insufficient_resource"
	KindStoreUnavailable     FailureKind = "store_unavailable"
)

// Kind sentinels let callers use errors.Is(err, domain.ErrValidation) on any Failure
var (
	ErrValidation           = errors.New(string(KindValidation))
	ErrInsufficientResource = errors.New(string(KindInsufficientResource))
	ErrStoreUnavailable     = errors.New(string(KindStoreUnavailable))
)

// Failure is the single structured failure result returned by the reward pipeline
// and the services wrapping it.
type Failure struct {
	Kind   FailureKind `json:"kind"`
	Detail string      `json:"detail"`
	Err    error       `json:"-"`
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Detail, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches the kind sentinels
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrValidation:
		return f.Kind == KindValidation
	case ErrInsufficientResource:
		return f.Kind == KindInsufficientResource
	case ErrStoreUnavailable:
		return f.Kind == KindStoreUnavailable
	}
	return false
}

// NewValidationFailure reports rejected input
func NewValidationFailure(cause error, detail string) *Failure {
	return &Failure{Kind: KindValidation, Detail: detail, Err: cause}
}

// NewInsufficientResource reports a request the user cannot afford or is capped on
func NewInsufficientResource(cause error, detail string) *Failure {
	return &Failure{Kind: KindInsufficientResource, Detail: detail, Err: cause}
}

// NewStoreUnavailable reports a failing backing store
func NewStoreUnavailable(cause error, detail string) *Failure {
	return &Failure{Kind: KindStoreUnavailable, Detail: detail, Err: cause}
}

// AsFailure extracts a Failure from an error chain
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
