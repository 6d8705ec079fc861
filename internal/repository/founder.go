package repository

import (
	"context"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// Founder defines the interface for founder slot persistence
type Founder interface {
	// CountSlots returns confirmed founders and live pending reservations
	CountSlots(ctx context.Context, now time.Time) (confirmed, reserved int, err error)
	ExpireReservations(ctx context.Context, now time.Time) (int64, error)

	BeginTx(ctx context.Context) (FounderTx, error)
}

// FounderTx covers reservation, confirmation and webhook bookkeeping
type FounderTx interface {
	ProgressionTx

	// LockFounderSlots serializes slot accounting for the rest of the transaction
	LockFounderSlots(ctx context.Context) error
	CountSlots(ctx context.Context, now time.Time) (confirmed, reserved int, err error)

	GetActiveReservation(ctx context.Context, userID string, now time.Time) (*domain.FounderReservation, error)
	CreateReservation(ctx context.Context, reservation *domain.FounderReservation) error
	// ConfirmReservation only matches a pending reservation held by userID
	ConfirmReservation(ctx context.Context, reservationID, userID string, at time.Time) error
	SetFounder(ctx context.Context, userID string) error

	// MarkWebhookProcessed returns false when the event id was already recorded
	MarkWebhookProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}
