package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/repository"
)

const profileColumns = `user_id, display_name, xp, level, gold, current_streak, longest_streak,
	streak_freeze_count, is_founder, last_daily_reward, streak_updated_at, created_at, updated_at`

// ProfileRepository implements repository.Profile for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// progressionTx implements repository.ProgressionTx
type progressionTx struct {
	txBase
}

// BeginTx starts a new transaction
func (r *ProfileRepository) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &progressionTx{txBase{tx: tx}}, nil
}

// CreateProfile inserts a new profile at level 1
func (r *ProfileRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (user_id, display_name, xp, level, gold)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		p.UserID, p.DisplayName, p.XP, p.Level, p.Gold,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertProfile, err)
	}
	return nil
}

// GetProfile returns the profile with its unlocked skills
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := getProfile(ctx, r.db, userID, false)
	if err != nil {
		return nil, err
	}
	skills, err := getUnlockedSkills(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}
	p.UnlockedSkills = skills.IDs()
	return p, nil
}

// GetStreakState returns only the streak columns
func (r *ProfileRepository) GetStreakState(ctx context.Context, userID string) (*domain.StreakState, error) {
	var s domain.StreakState
	err := r.db.QueryRow(ctx, `
		SELECT current_streak, longest_streak, streak_freeze_count, last_daily_reward, streak_updated_at
		FROM profiles WHERE user_id = $1`, userID,
	).Scan(&s.CurrentStreak, &s.LongestStreak, &s.FreezeCount, &s.LastDailyReward, &s.StreakUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStreak, err)
	}
	return &s, nil
}

// GetUnlockedSkills returns the user's skill set
func (r *ProfileRepository) GetUnlockedSkills(ctx context.Context, userID string) (domain.SkillSet, error) {
	return getUnlockedSkills(ctx, r.db, userID)
}

// UnlockSkill appends a skill; unlocking twice is a no-op reported as false
func (r *ProfileRepository) UnlockSkill(ctx context.Context, userID, skillID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2)
		ON CONFLICT (user_id, skill_id) DO NOTHING`, userID, skillID)
	if err != nil {
		return false, wrapWrite(err, ErrMsgFailedToUnlockSkill)
	}
	return tag.RowsAffected() == 1, nil
}

// ListGoldTransactions returns the newest ledger rows first
func (r *ProfileRepository) ListGoldTransactions(ctx context.Context, userID string, limit int) ([]domain.GoldTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount, reason, reference, balance_after, created_at
		FROM gold_transactions WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLedger, err)
	}

	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.GoldTransaction, error) {
		var g domain.GoldTransaction
		err := row.Scan(&g.ID, &g.UserID, &g.Amount, &g.Reason, &g.Reference, &g.BalanceAfter, &g.CreatedAt)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLedger, err)
	}
	return txns, nil
}

// GetProfileForUpdate locks the profile row for the rest of the transaction
func (t *progressionTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	return getProfile(ctx, t.tx, userID, true)
}

func (t *progressionTx) GetUnlockedSkills(ctx context.Context, userID string) (domain.SkillSet, error) {
	return getUnlockedSkills(ctx, t.tx, userID)
}

func (t *progressionTx) UpdateProgression(ctx context.Context, userID string, o domain.ProgressionOutcome) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE profiles SET xp = $2, level = $3, gold = $4, updated_at = NOW()
		WHERE user_id = $1`, userID, o.XP, o.Level, o.Gold)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateProgress, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *progressionTx) UpdateStreak(ctx context.Context, userID string, s domain.StreakState) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE profiles SET current_streak = $2, longest_streak = $3, streak_freeze_count = $4,
			last_daily_reward = $5, streak_updated_at = $6, updated_at = NOW()
		WHERE user_id = $1`,
		userID, s.CurrentStreak, s.LongestStreak, s.FreezeCount, s.LastDailyReward, s.StreakUpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateStreak, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (t *progressionTx) RecordDailyClaim(ctx context.Context, userID string, c *domain.DailyClaim) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO daily_claims (user_id, streak_day, status, freeze_used, xp_awarded, title, claimed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, c.Evaluation.StreakCount, string(c.Evaluation.Status), c.Evaluation.FreezeUsed,
		c.Reward.XP, c.Reward.Title, c.ClaimedAt)
	if err != nil {
		return wrapWrite(err, ErrMsgFailedToRecordDailyClaim)
	}
	return nil
}

// RecordGoldTransaction inserts a ledger row keyed by (user_id, reference)
func (t *progressionTx) RecordGoldTransaction(ctx context.Context, g *domain.GoldTransaction) (bool, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO gold_transactions (user_id, amount, reason, reference, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT uq_gold_transactions_user_reference DO NOTHING
		RETURNING id`,
		g.UserID, g.Amount, g.Reason, g.Reference, g.BalanceAfter, g.CreatedAt,
	).Scan(&g.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, wrapWrite(err, ErrMsgFailedToRecordGold)
	}
	return true, nil
}

func (t *progressionTx) GetGoldTransactionByReference(ctx context.Context, userID, reference string) (*domain.GoldTransaction, error) {
	var g domain.GoldTransaction
	err := t.tx.QueryRow(ctx, `
		SELECT id, user_id, amount, reason, reference, balance_after, created_at
		FROM gold_transactions WHERE user_id = $1 AND reference = $2`, userID, reference,
	).Scan(&g.ID, &g.UserID, &g.Amount, &g.Reason, &g.Reference, &g.BalanceAfter, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerRefNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLedgerRef, err)
	}
	return &g, nil
}

func getProfile(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Profile, error) {
	sql := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}

	var p domain.Profile
	err := q.QueryRow(ctx, sql, userID).Scan(
		&p.UserID, &p.DisplayName, &p.XP, &p.Level, &p.Gold,
		&p.CurrentStreak, &p.LongestStreak, &p.StreakFreezeCount, &p.IsFounder,
		&p.LastDailyReward, &p.StreakUpdatedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetProfile, err)
	}
	return &p, nil
}

func getUnlockedSkills(ctx context.Context, q querier, userID string) (domain.SkillSet, error) {
	rows, err := q.Query(ctx, `SELECT skill_id FROM user_skills WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySkills, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySkills, err)
	}
	return domain.NewSkillSet(ids...), nil
}

var (
	_ repository.Profile       = (*ProfileRepository)(nil)
	_ repository.ProgressionTx = (*progressionTx)(nil)
)
