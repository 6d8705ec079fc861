package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so read helpers can
// run inside or outside a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == PgErrorCodeUniqueViolation
}

// wrapWrite maps a missing-profile foreign key failure to ErrUserNotFound
func wrapWrite(err error, msg string) error {
	if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// txBase carries the commit/rollback half of every repository transaction
type txBase struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *txBase) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *txBase) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
