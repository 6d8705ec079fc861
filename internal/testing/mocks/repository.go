// Package mocks holds testify mocks for the repository and publisher
// interfaces shared by the service packages.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/repository"
)

// ProfileRepository implements repository.Profile
type ProfileRepository struct {
	mock.Mock
}

func (m *ProfileRepository) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *ProfileRepository) GetStreakState(ctx context.Context, userID string) (*domain.StreakState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakState), args.Error(1)
}

func (m *ProfileRepository) GetUnlockedSkills(ctx context.Context, userID string) (domain.SkillSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.SkillSet), args.Error(1)
}

func (m *ProfileRepository) UnlockSkill(ctx context.Context, userID, skillID string) (bool, error) {
	args := m.Called(ctx, userID, skillID)
	return args.Bool(0), args.Error(1)
}

func (m *ProfileRepository) ListGoldTransactions(ctx context.Context, userID string, limit int) ([]domain.GoldTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoldTransaction), args.Error(1)
}

func (m *ProfileRepository) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ProgressionTx), args.Error(1)
}

// ProgressionTx implements repository.ProgressionTx
type ProgressionTx struct {
	mock.Mock
}

func (m *ProgressionTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Rollback is not asserted by default; every test path defers it
func (m *ProgressionTx) Rollback(ctx context.Context) error {
	return nil
}

func (m *ProgressionTx) GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *ProgressionTx) GetUnlockedSkills(ctx context.Context, userID string) (domain.SkillSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.SkillSet), args.Error(1)
}

func (m *ProgressionTx) UpdateProgression(ctx context.Context, userID string, outcome domain.ProgressionOutcome) error {
	args := m.Called(ctx, userID, outcome)
	return args.Error(0)
}

func (m *ProgressionTx) UpdateStreak(ctx context.Context, userID string, state domain.StreakState) error {
	args := m.Called(ctx, userID, state)
	return args.Error(0)
}

func (m *ProgressionTx) RecordDailyClaim(ctx context.Context, userID string, claim *domain.DailyClaim) error {
	args := m.Called(ctx, userID, claim)
	return args.Error(0)
}

func (m *ProgressionTx) RecordGoldTransaction(ctx context.Context, txn *domain.GoldTransaction) (bool, error) {
	args := m.Called(ctx, txn)
	return args.Bool(0), args.Error(1)
}

func (m *ProgressionTx) GetGoldTransactionByReference(ctx context.Context, userID, reference string) (*domain.GoldTransaction, error) {
	args := m.Called(ctx, userID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoldTransaction), args.Error(1)
}

// QuestRepository implements repository.Quest
type QuestRepository struct {
	mock.Mock
}

func (m *QuestRepository) CreateQuest(ctx context.Context, quest *domain.Quest) error {
	args := m.Called(ctx, quest)
	return args.Error(0)
}

func (m *QuestRepository) GetQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *QuestRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *QuestRepository) BeginTx(ctx context.Context) (repository.QuestTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.QuestTx), args.Error(1)
}

// QuestTx implements repository.QuestTx
type QuestTx struct {
	ProgressionTx
}

func (m *QuestTx) GetQuestForUpdate(ctx context.Context, questID string) (*domain.Quest, error) {
	args := m.Called(ctx, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quest), args.Error(1)
}

func (m *QuestTx) MarkQuestCompleted(ctx context.Context, questID string, at time.Time) error {
	args := m.Called(ctx, questID, at)
	return args.Error(0)
}

func (m *QuestTx) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

// FounderRepository implements repository.Founder
type FounderRepository struct {
	mock.Mock
}

func (m *FounderRepository) CountSlots(ctx context.Context, now time.Time) (int, int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *FounderRepository) ExpireReservations(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FounderRepository) BeginTx(ctx context.Context) (repository.FounderTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.FounderTx), args.Error(1)
}

// FounderTx implements repository.FounderTx
type FounderTx struct {
	ProgressionTx
}

func (m *FounderTx) LockFounderSlots(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *FounderTx) CountSlots(ctx context.Context, now time.Time) (int, int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *FounderTx) GetActiveReservation(ctx context.Context, userID string, now time.Time) (*domain.FounderReservation, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FounderReservation), args.Error(1)
}

func (m *FounderTx) CreateReservation(ctx context.Context, reservation *domain.FounderReservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *FounderTx) ConfirmReservation(ctx context.Context, reservationID, userID string, at time.Time) error {
	args := m.Called(ctx, reservationID, userID, at)
	return args.Error(0)
}

func (m *FounderTx) SetFounder(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *FounderTx) MarkWebhookProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	args := m.Called(ctx, eventID, eventType)
	return args.Bool(0), args.Error(1)
}

// Publisher implements event.Publisher and records what was published
type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishWithRetry(ctx context.Context, e event.Event) {
	m.Called(ctx, e)
}

// Types returns the published event types in order
func (m *Publisher) Types() []event.Type {
	var types []event.Type
	for _, call := range m.Calls {
		if call.Method == "PublishWithRetry" {
			types = append(types, call.Arguments.Get(1).(event.Event).Type)
		}
	}
	return types
}

var (
	_ repository.Profile       = (*ProfileRepository)(nil)
	_ repository.ProgressionTx = (*ProgressionTx)(nil)
	_ repository.Quest         = (*QuestRepository)(nil)
	_ repository.QuestTx       = (*QuestTx)(nil)
	_ repository.Founder       = (*FounderRepository)(nil)
	_ repository.FounderTx     = (*FounderTx)(nil)
	_ event.Publisher          = (*Publisher)(nil)
)
