package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/repository"
)

const countSlotsSQL = `
	SELECT
		(SELECT COUNT(*) FROM profiles WHERE is_founder),
		(SELECT COUNT(*) FROM founder_reservations WHERE status = 'pending' AND expires_at > $1)`

// FounderRepository implements repository.Founder for PostgreSQL
type FounderRepository struct {
	db *pgxpool.Pool
}

// NewFounderRepository creates a new FounderRepository
func NewFounderRepository(db *pgxpool.Pool) *FounderRepository {
	return &FounderRepository{db: db}
}

// founderTx implements repository.FounderTx
type founderTx struct {
	progressionTx
}

// BeginTx starts a new transaction
func (r *FounderRepository) BeginTx(ctx context.Context) (repository.FounderTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &founderTx{progressionTx{txBase{tx: tx}}}, nil
}

func (r *FounderRepository) CountSlots(ctx context.Context, now time.Time) (int, int, error) {
	return countSlots(ctx, r.db, now)
}

// ExpireReservations releases pending reservations whose hold has passed
func (r *FounderRepository) ExpireReservations(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE founder_reservations SET status = 'expired'
		WHERE status = 'pending' AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToExpireReservations, err)
	}
	return tag.RowsAffected(), nil
}

// LockFounderSlots takes a transaction-scoped advisory lock
func (t *founderTx) LockFounderSlots(ctx context.Context) error {
	if _, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, FounderSlotsLockKey); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLockSlots, err)
	}
	return nil
}

func (t *founderTx) CountSlots(ctx context.Context, now time.Time) (int, int, error) {
	return countSlots(ctx, t.tx, now)
}

func (t *founderTx) GetActiveReservation(ctx context.Context, userID string, now time.Time) (*domain.FounderReservation, error) {
	var r domain.FounderReservation
	err := t.tx.QueryRow(ctx, `
		SELECT reservation_id::text, user_id, status, expires_at, confirmed_at, created_at
		FROM founder_reservations
		WHERE user_id = $1 AND status = 'pending' AND expires_at > $2
		ORDER BY created_at DESC
		LIMIT 1`, userID, now,
	).Scan(&r.ID, &r.UserID, &r.Status, &r.ExpiresAt, &r.ConfirmedAt, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetReservation, err)
	}
	return &r, nil
}

func (t *founderTx) CreateReservation(ctx context.Context, r *domain.FounderReservation) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO founder_reservations (reservation_id, user_id, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.UserID, r.Status, r.ExpiresAt, r.CreatedAt)
	if err != nil {
		return wrapWrite(err, ErrMsgFailedToInsertReservation)
	}
	return nil
}

// ConfirmReservation only confirms a pending reservation owned by userID
func (t *founderTx) ConfirmReservation(ctx context.Context, reservationID, userID string, at time.Time) error {
	// a malformed id would abort the surrounding transaction
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return domain.ErrReservationNotFound
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE founder_reservations SET status = 'confirmed', confirmed_at = $2
		WHERE reservation_id = $1 AND user_id = $3 AND status = 'pending'`, id, at, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToConfirmReservation, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (t *founderTx) SetFounder(ctx context.Context, userID string) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE profiles SET is_founder = TRUE, updated_at = NOW() WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetFounder, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *founderTx) MarkWebhookProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO processed_webhook_events (event_id, event_type) VALUES ($1, $2)
		ON CONFLICT (event_id) DO NOTHING`, eventID, eventType)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToMarkWebhook, err)
	}
	return tag.RowsAffected() == 1, nil
}

func countSlots(ctx context.Context, q querier, now time.Time) (int, int, error) {
	var confirmed, reserved int
	if err := q.QueryRow(ctx, countSlotsSQL, now).Scan(&confirmed, &reserved); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountSlots, err)
	}
	return confirmed, reserved, nil
}

var (
	_ repository.Founder   = (*FounderRepository)(nil)
	_ repository.FounderTx = (*founderTx)(nil)
)
