package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/progression"
	"github.com/habitquest/habitquest-go/internal/repository"
)

// Service manages daily claims and streak freezes
type Service interface {
	// Status never fails; a store error is reported as the safe default
	Status(ctx context.Context, userID string) domain.StreakEvaluation
	ClaimDaily(ctx context.Context, userID string) (*domain.DailyClaim, error)
	PurchaseFreeze(ctx context.Context, userID string) (*domain.FreezePurchase, error)
	Affordability(ctx context.Context, userID string) (int, error)
	Calendar() Calendar
}

type service struct {
	repo      repository.Profile
	publisher event.Publisher
	calendar  Calendar
	now       func() time.Time
	cache     *expirable.LRU[string, domain.StreakEvaluation]
}

// Option configures the streak service
type Option func(*service)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithStatusCache sets the size and TTL of the status cache
func WithStatusCache(size int, ttl time.Duration) Option {
	return func(s *service) {
		s.cache = expirable.NewLRU[string, domain.StreakEvaluation](size, nil, ttl)
	}
}

// NewService creates a new streak service
func NewService(repo repository.Profile, publisher event.Publisher, cal Calendar, opts ...Option) Service {
	s := &service{
		repo:      repo,
		publisher: publisher,
		calendar:  cal,
		now:       time.Now,
		cache:     expirable.NewLRU[string, domain.StreakEvaluation](DefaultStatusCacheSize, nil, DefaultStatusCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Calendar() Calendar {
	return s.calendar
}

func (s *service) Status(ctx context.Context, userID string) domain.StreakEvaluation {
	if eval, ok := s.cache.Get(userID); ok {
		return eval
	}

	st, err := s.repo.GetStreakState(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgStatusDegraded, "user_id", userID, "error", err)
		return SafeDefault()
	}

	eval := Evaluate(s.now(), *st, s.calendar)
	s.cache.Add(userID, eval)
	return eval
}

func (s *service) ClaimDaily(ctx context.Context, userID string) (*domain.DailyClaim, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgBeginTxFailed)
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := lockProfile(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	eval := Evaluate(now, profile.Streak(), s.calendar)
	if !eval.CanClaimToday {
		log.Info(LogMsgAlreadyClaimed, "user_id", userID)
		return nil, fmt.Errorf("%w: next claim after %s", domain.ErrAlreadyClaimedToday,
			s.calendar.StartOfDay(now).AddDate(0, 0, 1).Format(time.RFC3339))
	}

	reward, err := CalculateStreakReward(eval.StreakCount)
	if err != nil {
		return nil, err
	}
	outcome := progression.Apply(profile.Progression(), domain.ProgressionDelta{XP: reward.XP})
	claim := &domain.DailyClaim{
		Evaluation:  eval,
		Reward:      reward,
		Progression: outcome,
		ClaimedAt:   now,
	}

	if err := tx.UpdateProgression(ctx, userID, outcome); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgUpdateFailed)
	}
	if err := tx.UpdateStreak(ctx, userID, Apply(now, eval)); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgUpdateFailed)
	}
	if err := tx.RecordDailyClaim(ctx, userID, claim); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgUpdateFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCommitFailed)
	}
	s.cache.Remove(userID)

	if eval.FreezeUsed {
		log.Info(LogMsgFreezeConsumed, "user_id", userID, "streak", eval.StreakCount, "freezes_left", eval.FreezesRemaining)
	}
	log.Info(LogMsgDailyClaimed, "user_id", userID, "status", eval.Status, "day", reward.Day, "xp", reward.XP)

	s.publisher.PublishWithRetry(ctx, event.NewStreakClaimedEvent(userID, claim))
	if outcome.LeveledUp {
		s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(userID, outcome.OldLevel, outcome.NewLevel, SourceDailyClaim))
	}

	return claim, nil
}

func (s *service) PurchaseFreeze(ctx context.Context, userID string) (*domain.FreezePurchase, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgBeginTxFailed)
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := lockProfile(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	purchase, err := PurchaseFreeze(profile.XP, profile.StreakFreezeCount)
	if err != nil {
		log.Info(LogMsgFreezeRejected, "user_id", userID, "xp", profile.XP, "freezes", profile.StreakFreezeCount, "reason", err)
		return nil, err
	}

	// The level is recomputed from the reduced xp, so buying a freeze can drop a level
	outcome := progression.Apply(profile.Progression(), domain.ProgressionDelta{XP: -purchase.Cost})
	st := profile.Streak()
	st.FreezeCount = purchase.FreezeCount

	if err := tx.UpdateProgression(ctx, userID, outcome); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgUpdateFailed)
	}
	if err := tx.UpdateStreak(ctx, userID, st); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgUpdateFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgCommitFailed)
	}
	s.cache.Remove(userID)

	log.Info(LogMsgFreezePurchased, "user_id", userID, "freezes", purchase.FreezeCount, "xp_left", purchase.XP)
	s.publisher.PublishWithRetry(ctx, event.NewFreezePurchasedEvent(userID, purchase))
	return &purchase, nil
}

func (s *service) Affordability(ctx context.Context, userID string) (int, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, err
		}
		return 0, domain.NewStoreUnavailable(err, ErrMsgLoadStreakFailed)
	}
	return min(AffordableFreezes(profile.XP), domain.MaxFreezeCount-profile.StreakFreezeCount), nil
}

func lockProfile(ctx context.Context, tx repository.ProgressionTx, userID string) (*domain.Profile, error) {
	profile, err := tx.GetProfileForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, domain.NewStoreUnavailable(err, ErrMsgLoadStreakFailed)
	}
	return profile, nil
}
