package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameQuestsCompleted       = "quests_completed_total"
	MetricNameXPAwarded             = "xp_awarded_total"
	MetricNameLevelUps              = "level_ups_total"
	MetricNameLuckyProcs            = "lucky_procs_total"
	MetricNameStreakClaims          = "streak_claims_total"
	MetricNameFreezesPurchased      = "streak_freezes_purchased_total"
	MetricNameGoldEarned            = "gold_earned_total"
	MetricNameGoldSpent             = "gold_spent_total"
	MetricNameGoldPurchased         = "gold_purchased_total"
	MetricNameFounderClaims         = "founder_claims_total"
	MetricNameReservationsExpired   = "founder_reservations_expired_total"
	MetricNameFounderSlotsRemaining = "founder_slots_remaining"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextQuestsCompleted       = "Total number of quests completed"
	HelpTextXPAwarded             = "Total xp awarded, after bonuses"
	HelpTextLevelUps              = "Total number of level-ups"
	HelpTextLuckyProcs            = "Total number of lucky doubler procs"
	HelpTextStreakClaims          = "Total number of daily streak claims"
	HelpTextFreezesPurchased      = "Total number of streak freezes bought with xp"
	HelpTextGoldEarned            = "Total gold credited through the ledger"
	HelpTextGoldSpent             = "Total gold debited through the ledger"
	HelpTextGoldPurchased         = "Total gold bought through checkout"
	HelpTextFounderClaims         = "Total number of confirmed founder purchases"
	HelpTextReservationsExpired   = "Total number of founder reservations expired by the sweep"
	HelpTextFounderSlotsRemaining = "Founder slots still available"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelDifficulty = "difficulty"
	LabelSource     = "source"
)

// PathUnmatched labels requests that did not match a route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
