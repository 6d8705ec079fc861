package database

import "time"

// Connection pool defaults used when PoolOptions leaves a field unset
const (
	DefaultMaxConnections int32 = 10
	DefaultMinConnections int32 = 2

	// ConnectTimeout bounds the first ping after the pool is created
	ConnectTimeout = 10 * time.Second
)

// Migrations
const (
	MigrationDialect = "postgres"
	MigrationsDir    = "migrations"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgFailedToReadMigrations  = "failed to read embedded migrations"
)

// Error Messages - Readiness
const (
	ErrMsgUnreachable  = "database unreachable"
	ErrMsgSchemaBehind = "database schema is behind this build"
)

// Log Messages
const (
	LogMsgConnected         = "Connected to database"
	LogMsgMigrationsApplied = "Database migrations applied"
)
