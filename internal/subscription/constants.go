package subscription

import "time"

// Defaults
const (
	DefaultFounderSlots      = 100
	DefaultReservationTTL    = 15 * time.Minute
	AvailabilityCacheTTL     = 10 * time.Second
	StripeCheckoutCompleted  = "checkout.session.completed"
	MetadataKeyKind          = "kind"
	MetadataKeyUserID        = "user_id"
	MetadataKeyGoldAmount    = "gold_amount"
	MetadataKeyReservationID = "reservation_id"
	GoldReferencePrefix      = "stripe:"
)

// Error messages
const (
	ErrMsgBeginTxFailed     = "failed to begin transaction"
	ErrMsgCommitFailed      = "failed to commit transaction"
	ErrMsgLockFailed        = "failed to lock founder slots"
	ErrMsgCountFailed       = "failed to count founder slots"
	ErrMsgReserveFailed     = "failed to create reservation"
	ErrMsgConfirmFailed     = "failed to confirm founder purchase"
	ErrMsgExpireFailed      = "failed to expire reservations"
	ErrMsgLoadProfileFailed = "failed to load profile"
	ErrMsgMarkWebhookFailed = "failed to record webhook event"
	ErrMsgSoldOutFmt        = "all %d founder spots are taken"
	ErrMsgDecodeSessionFmt  = "failed to decode checkout session: %v"
	ErrMsgMissingUserID     = "checkout session has no user id"
	ErrMsgUnknownKindFmt    = "unknown purchase kind %q"
	ErrMsgInvalidGoldAmount = "invalid gold amount %q"
)

// Log messages
const (
	LogMsgSpotReserved         = "Founder spot reserved"
	LogMsgReservationReused    = "Returning existing founder reservation"
	LogMsgSoldOut              = "Founder spots sold out"
	LogMsgWebhookIgnored       = "Ignoring webhook event type"
	LogMsgWebhookDuplicate     = "Webhook event already processed"
	LogMsgFounderConfirmed     = "Founder purchase confirmed"
	LogMsgAlreadyFounderPaid   = "Founder purchase for existing founder, nothing to grant"
	LogMsgReservationMissing   = "Founder purchase without a live reservation"
	LogMsgGoldPurchaseCredited = "Gold purchase credited"
	LogMsgReservationsExpired  = "Expired founder reservations"
)
