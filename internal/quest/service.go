package quest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/progression"
	"github.com/habitquest/habitquest-go/internal/repository"
	"github.com/habitquest/habitquest-go/internal/reward"
	"github.com/habitquest/habitquest-go/internal/streak"
)

type Service interface {
	CreateQuest(ctx context.Context, userID, title string, difficulty domain.Difficulty, xpValue int) (*domain.Quest, error)
	GetQuest(ctx context.Context, questID string) (*domain.Quest, error)
	CompleteQuest(ctx context.Context, userID, questID string) (*domain.QuestCompletion, error)
}

type service struct {
	repo       repository.Quest
	aggregator *reward.Aggregator
	calendar   streak.Calendar
	publisher  event.Publisher
	now        func() time.Time
}

// NewService creates a new quest service
func NewService(repo repository.Quest, aggregator *reward.Aggregator, cal streak.Calendar, publisher event.Publisher) Service {
	return &service{
		repo:       repo,
		aggregator: aggregator,
		calendar:   cal,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *service) CreateQuest(ctx context.Context, userID, title string, difficulty domain.Difficulty, xpValue int) (*domain.Quest, error) {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, ErrMsgTitleRequired)
	case len(title) > MaxTitleLength:
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgTitleTooLong, MaxTitleLength))
	case !difficulty.Valid():
		return nil, domain.NewValidationFailure(domain.ErrInvalidDifficulty, fmt.Sprintf("unknown difficulty %q", difficulty))
	case xpValue < 0:
		return nil, domain.NewValidationFailure(domain.ErrNegativeXP, fmt.Sprintf(ErrMsgNegativeXPValue, xpValue))
	case xpValue > MaxXPValue:
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf(ErrMsgXPValueTooLarge, xpValue, MaxXPValue))
	}

	q := &domain.Quest{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Difficulty: difficulty,
		XPValue:    xpValue,
		CreatedAt:  s.now(),
	}
	if err := s.repo.CreateQuest(ctx, q); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgCreateFailed)
	}

	logger.FromContext(ctx).Info(LogMsgQuestCreated, "user_id", userID, "quest_id", q.ID, "difficulty", difficulty)
	return q, nil
}

func (s *service) GetQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	q, err := s.repo.GetQuest(ctx, questID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgLoadFailed)
	}
	return q, nil
}

// CompleteQuest credits a quest's reward exactly once. The quest and profile
// rows stay locked from the read through the write.
func (s *service) CompleteQuest(ctx context.Context, userID, questID string) (*domain.QuestCompletion, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgBeginTxFailed)
	}
	defer repository.SafeRollback(ctx, tx)

	q, err := tx.GetQuestForUpdate(ctx, questID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgLoadFailed)
	}
	if q.UserID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestNotFound, questID)
	}
	if q.CompletedAt != nil {
		return nil, fmt.Errorf("%w: "+ErrMsgCompletedAtFmt, domain.ErrQuestAlreadyCompleted, questID, q.CompletedAt.Format(time.RFC3339))
	}

	profile, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgLoadProfile)
	}
	skills, err := tx.GetUnlockedSkills(ctx, userID)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgLoadSkills)
	}

	now := s.now()
	done, err := tx.CountCompletedSince(ctx, userID, s.calendar.StartOfDay(now))
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCountFailed)
	}
	questsToday := done + 1

	// A streak that lapsed earns no streak bonus even before the next claim resets it
	currentStreak := profile.CurrentStreak
	if streak.IsBroken(now, profile.Streak(), s.calendar) {
		currentStreak = 0
	}

	res, err := s.aggregator.Calculate(reward.Input{
		Skills:               skills,
		Difficulty:           q.Difficulty,
		BaseXP:               q.XPValue,
		CurrentStreak:        currentStreak,
		QuestsCompletedToday: questsToday,
		Weekday:              s.calendar.Weekday(now),
	})
	if err != nil {
		return nil, err
	}

	gold := reward.GoldForXP(res.FinalXP)
	outcome := progression.Apply(profile.Progression(), domain.ProgressionDelta{XP: res.FinalXP, Gold: gold})

	if err := tx.MarkQuestCompleted(ctx, questID, now); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgPersistFailed)
	}
	if err := tx.UpdateProgression(ctx, userID, outcome); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgPersistFailed)
	}
	if gold > 0 {
		if _, err := tx.RecordGoldTransaction(ctx, &domain.GoldTransaction{
			UserID:       userID,
			Amount:       gold,
			Reason:       domain.GoldReasonQuest,
			Reference:    "quest:" + questID,
			BalanceAfter: outcome.Gold,
			CreatedAt:    now,
		}); err != nil {
			return nil, domain.NewStoreUnavailable(err, ErrMsgPersistFailed)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCommitFailed)
	}

	completedAt := now
	q.CompletedAt = &completedAt
	completion := &domain.QuestCompletion{
		Quest:                *q,
		Reward:               res,
		GoldEarned:           gold,
		Progression:          outcome,
		QuestsCompletedToday: questsToday,
	}

	log.Info(LogMsgQuestCompleted, "user_id", userID, "quest_id", questID, "final_xp", res.FinalXP, "gold", gold, "level", outcome.Level)

	s.publisher.PublishWithRetry(ctx, event.NewQuestCompletedEvent(completion))
	if res.LuckyProc {
		log.Info(LogMsgLuckyProc, "user_id", userID, "quest_id", questID)
		s.publisher.PublishWithRetry(ctx, event.NewLuckyProcEvent(userID, res.BaseXP+res.SkillBonusXP+res.StreakBonusXP+res.MultitaskerXP, res.FinalXP))
	}
	if outcome.LeveledUp {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(userID, outcome.OldLevel, outcome.NewLevel, SourceQuest))
	}

	return completion, nil
}
