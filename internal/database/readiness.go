package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
)

// Readiness failures
var (
	ErrUnreachable  = errors.New(ErrMsgUnreachable)
	ErrSchemaBehind = errors.New(ErrMsgSchemaBehind)
)

// Querier is the part of *pgxpool.Pool the readiness check needs
type Querier interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Checker reports the service ready once the database answers and carries
// every migration embedded in this binary
type Checker struct {
	db   Querier
	want int64
}

// NewChecker builds a Checker expecting the newest embedded migration
func NewChecker(db Querier) (*Checker, error) {
	want, err := LatestMigration()
	if err != nil {
		return nil, err
	}
	return &Checker{db: db, want: want}, nil
}

// Check returns ErrUnreachable or ErrSchemaBehind, wrapped with detail
func (c *Checker) Check(ctx context.Context) error {
	if err := c.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var applied int64
	if err := c.db.QueryRow(ctx, appliedVersionQuery).Scan(&applied); err != nil {
		// A missing goose table means setup never ran
		return fmt.Errorf("%w: %v", ErrSchemaBehind, err)
	}
	if applied < c.want {
		return fmt.Errorf("%w: at %d, binary needs %d", ErrSchemaBehind, applied, c.want)
	}
	return nil
}

// LatestMigration returns the highest version among the embedded migrations
func LatestMigration() (int64, error) {
	entries, err := fs.ReadDir(migrationsFS, MigrationsDir)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReadMigrations, err)
	}

	var latest int64
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		v, err := goose.NumericComponent(e.Name())
		if err != nil {
			return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReadMigrations, err)
		}
		latest = max(latest, v)
	}
	return latest, nil
}

const appliedVersionQuery = `SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied`
