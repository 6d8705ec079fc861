package repository

import (
	"context"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// Quest defines the interface for quest persistence
type Quest interface {
	CreateQuest(ctx context.Context, quest *domain.Quest) error
	GetQuest(ctx context.Context, questID string) (*domain.Quest, error)
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)

	BeginTx(ctx context.Context) (QuestTx, error)
}

// QuestTx completes a quest and credits its reward in one transaction
type QuestTx interface {
	ProgressionTx

	GetQuestForUpdate(ctx context.Context, questID string) (*domain.Quest, error)
	MarkQuestCompleted(ctx context.Context, questID string, at time.Time) error
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)
}
