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

const questColumns = `quest_id::text, user_id, title, difficulty, xp_value, completed_at, created_at`

// QuestRepository implements repository.Quest for PostgreSQL
type QuestRepository struct {
	db *pgxpool.Pool
}

// NewQuestRepository creates a new QuestRepository
func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

// questTx implements repository.QuestTx
type questTx struct {
	progressionTx
}

// BeginTx starts a new transaction
func (r *QuestRepository) BeginTx(ctx context.Context) (repository.QuestTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &questTx{progressionTx{txBase{tx: tx}}}, nil
}

// CreateQuest inserts a new open quest
func (r *QuestRepository) CreateQuest(ctx context.Context, q *domain.Quest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO quests (quest_id, user_id, title, difficulty, xp_value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		q.ID, q.UserID, q.Title, string(q.Difficulty), q.XPValue,
	).Scan(&q.CreatedAt)
	if err != nil {
		return wrapWrite(err, ErrMsgFailedToInsertQuest)
	}
	return nil
}

// GetQuest returns a quest by id
func (r *QuestRepository) GetQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	return getQuest(ctx, r.db, questID, false)
}

// CountCompletedSince counts the user's quests completed at or after since
func (r *QuestRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return countCompletedSince(ctx, r.db, userID, since)
}

func (t *questTx) GetQuestForUpdate(ctx context.Context, questID string) (*domain.Quest, error) {
	return getQuest(ctx, t.tx, questID, true)
}

// MarkQuestCompleted only touches an open quest
func (t *questTx) MarkQuestCompleted(ctx context.Context, questID string, at time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE quests SET completed_at = $2
		WHERE quest_id = $1 AND completed_at IS NULL`, questID, at)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCompleteQuest, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestAlreadyCompleted
	}
	return nil
}

func (t *questTx) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return countCompletedSince(ctx, t.tx, userID, since)
}

func getQuest(ctx context.Context, q querier, questID string, forUpdate bool) (*domain.Quest, error) {
	sql := `SELECT ` + questColumns + ` FROM quests WHERE quest_id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}

	var quest domain.Quest
	var difficulty string
	err := q.QueryRow(ctx, sql, questID).Scan(
		&quest.ID, &quest.UserID, &quest.Title, &difficulty, &quest.XPValue, &quest.CompletedAt, &quest.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgErrorCode(err) == PgErrorCodeInvalidText {
			return nil, domain.ErrQuestNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetQuest, err)
	}
	quest.Difficulty = domain.Difficulty(difficulty)
	return &quest, nil
}

func countCompletedSince(ctx context.Context, q querier, userID string, since time.Time) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM quests
		WHERE user_id = $1 AND completed_at >= $2`, userID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountQuests, err)
	}
	return n, nil
}

var (
	_ repository.Quest   = (*QuestRepository)(nil)
	_ repository.QuestTx = (*questTx)(nil)
)
