package repository

import (
	"context"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// Profile defines the interface for profile persistence
type Profile interface {
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	GetStreakState(ctx context.Context, userID string) (*domain.StreakState, error)

	// Skills are append-only; UnlockSkill reports whether a new row was written
	GetUnlockedSkills(ctx context.Context, userID string) (domain.SkillSet, error)
	UnlockSkill(ctx context.Context, userID, skillID string) (bool, error)

	ListGoldTransactions(ctx context.Context, userID string, limit int) ([]domain.GoldTransaction, error)

	BeginTx(ctx context.Context) (ProgressionTx, error)
}

// ProgressionTx extends Tx with the row-locked profile operations shared by
// every flow that moves xp, gold or streak state
type ProgressionTx interface {
	Tx // Commit, Rollback

	// GetProfileForUpdate locks the profile row until commit
	GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error)
	GetUnlockedSkills(ctx context.Context, userID string) (domain.SkillSet, error)

	UpdateProgression(ctx context.Context, userID string, outcome domain.ProgressionOutcome) error
	UpdateStreak(ctx context.Context, userID string, state domain.StreakState) error
	RecordDailyClaim(ctx context.Context, userID string, claim *domain.DailyClaim) error

	// References are scoped per user. RecordGoldTransaction returns false when
	// the user already has a row with the same reference.
	RecordGoldTransaction(ctx context.Context, txn *domain.GoldTransaction) (bool, error)
	// GetGoldTransactionByReference returns domain.ErrLedgerRefNotFound when absent
	GetGoldTransactionByReference(ctx context.Context, userID, reference string) (*domain.GoldTransaction, error)
}
