// Package database owns the Postgres connection pool, the embedded schema
// migrations and the readiness check built on both.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habitquest/habitquest-go/internal/config"
)

// PoolOptions sizes and ages pooled connections
type PoolOptions struct {
	MaxConns    int
	MinConns    int
	MaxConnIdle time.Duration
	MaxConnLife time.Duration
}

// OptionsFromConfig reads the DB_* pool settings
func OptionsFromConfig(cfg *config.Config) PoolOptions {
	return PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnIdle: cfg.DBConnIdle,
		MaxConnLife: cfg.DBConnLife,
	}
}

func (o PoolOptions) apply(pc *pgxpool.Config) {
	pc.MaxConns = clampConns(o.MaxConns, DefaultMaxConnections)
	pc.MinConns = min(clampConns(o.MinConns, DefaultMinConnections), pc.MaxConns)
	if o.MaxConnIdle > 0 {
		pc.MaxConnIdleTime = o.MaxConnIdle
	}
	if o.MaxConnLife > 0 {
		pc.MaxConnLifetime = o.MaxConnLife
	}
}

func clampConns(n int, fallback int32) int32 {
	switch {
	case n <= 0:
		return fallback
	case n > math.MaxInt32:
		return math.MaxInt32
	}
	return int32(n)
}

// Connect opens a pool and waits up to ConnectTimeout for the first ping.
// The credentials in connString are never logged.
func Connect(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}
	opts.apply(pc)

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s %s/%s: %w", ErrMsgFailedToPingDatabase,
			pc.ConnConfig.Host, pc.ConnConfig.Database, err)
	}

	slog.Default().Info(LogMsgConnected,
		"host", pc.ConnConfig.Host,
		"database", pc.ConnConfig.Database,
		"max_conns", pc.MaxConns,
		"min_conns", pc.MinConns)
	return pool, nil
}
