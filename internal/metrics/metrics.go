package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelDifficulty},
	)

	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelSource},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelSource},
	)

	LuckyProcs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLuckyProcs,
			Help: HelpTextLuckyProcs,
		},
	)

	StreakClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStreakClaims,
			Help: HelpTextStreakClaims,
		},
		[]string{LabelStatus},
	)

	FreezesPurchased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFreezesPurchased,
			Help: HelpTextFreezesPurchased,
		},
	)

	GoldEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldEarned,
			Help: HelpTextGoldEarned,
		},
	)

	GoldSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldSpent,
			Help: HelpTextGoldSpent,
		},
	)

	GoldPurchased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldPurchased,
			Help: HelpTextGoldPurchased,
		},
	)

	FounderClaims = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFounderClaims,
			Help: HelpTextFounderClaims,
		},
	)

	ReservationsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReservationsExpired,
			Help: HelpTextReservationsExpired,
		},
	)

	FounderSlotsRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameFounderSlotsRemaining,
			Help: HelpTextFounderSlotsRemaining,
		},
	)
)
