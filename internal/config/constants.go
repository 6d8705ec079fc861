package config

import "time"

const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "habitquest"
	DefaultVersion     = "dev"
	DefaultDBMaxConns  = 10
	DefaultDBMinConns  = 2
	DefaultDBConnIdle  = 5 * time.Minute
	DefaultDBConnLife  = time.Hour
	DefaultDBName      = "habitquest"
	MaintenanceDBName  = "postgres"
	DefaultWorkerCount = 2
	DefaultWorkerQueue = 64

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = time.Minute

	DefaultDayBoundaryTZ   = "UTC"
	DefaultProfileCacheTTL = 30 * time.Second

	DefaultFounderSlots          = 100
	DefaultFounderReservationTTL = 30 * time.Minute
	DefaultCronReservationSweep  = "@every 5m"
	DefaultCronFounderGauge      = "@every 1m"

	DefaultEventLogRetentionDays = 30
	DefaultCronEventLogCleanup   = "@daily"
)

// Doubler policies decide how the lucky proc and Double-Friday combine
const (
	DoublerPolicySingle = "single"
	DoublerPolicyStack  = "stack"
)

// DefaultDoublerPolicy applies at most one doubling per reward
const DefaultDoublerPolicy = DoublerPolicySingle
