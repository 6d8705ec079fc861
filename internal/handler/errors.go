package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgMissingSignature      = "Missing payment signature header"
	ErrMsgPayloadTooLarge       = "Webhook payload too large"
)

// Success messages for API responses
const (
	MsgWebhookProcessed      = "Webhook processed"
	MsgWebhookIgnored        = "Webhook event type ignored"
	MsgWebhookAlreadyHandled = "Webhook already processed"
	MsgSkillGranted          = "Skill granted"
	MsgSkillAlreadyUnlocked  = "Skill already unlocked"
)

// Failure kinds for errors that are not a domain.Failure
const (
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindInvalidSignature = "invalid_signature"
	KindInternal         = "internal_error"
)

// User-facing details for failures that carry no Detail of their own
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUserNotFound       = "Profile not found"
	ErrMsgQuestNotFound      = "Quest not found"
	ErrMsgUserAlreadyExists  = "A profile with that id already exists"
	ErrMsgQuestCompleted     = "Quest was already completed"
	ErrMsgAlreadyClaimed     = "Daily reward already claimed today"
	ErrMsgAlreadyFounder     = "You are already a founder"
	ErrMsgBadSignature       = "Webhook signature could not be verified"
	ErrMsgUnavailable        = "Server is temporarily unavailable. Please try again later."
)

// Log messages
const (
	LogMsgRequestFailed   = "Request failed"
	LogMsgDecodeFailedFmt = "Failed to decode %s request"
	LogMsgDecodedFmt      = "%s request decoded"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgWebhookRejected = "Webhook rejected"
)

// Limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	MaxWebhookBytes     = 64 << 10
)

// HeaderStripeSignature carries the payment provider signature
const HeaderStripeSignature = "Stripe-Signature"
