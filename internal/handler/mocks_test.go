package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/streak"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateProfile(ctx context.Context, userID, displayName string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, displayName)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockUserService) GetSkills(ctx context.Context, userID string) ([]domain.Skill, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).([]domain.Skill)
	return s, args.Error(1)
}

func (m *MockUserService) GrantSkill(ctx context.Context, userID, skillID string) (bool, error) {
	args := m.Called(ctx, userID, skillID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) InvalidateProfile(userID string) {
	m.Called(userID)
}

type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) CreateQuest(ctx context.Context, userID, title string, difficulty domain.Difficulty, xpValue int) (*domain.Quest, error) {
	args := m.Called(ctx, userID, title, difficulty, xpValue)
	q, _ := args.Get(0).(*domain.Quest)
	return q, args.Error(1)
}

func (m *MockQuestService) GetQuest(ctx context.Context, questID string) (*domain.Quest, error) {
	args := m.Called(ctx, questID)
	q, _ := args.Get(0).(*domain.Quest)
	return q, args.Error(1)
}

func (m *MockQuestService) CompleteQuest(ctx context.Context, userID, questID string) (*domain.QuestCompletion, error) {
	args := m.Called(ctx, userID, questID)
	c, _ := args.Get(0).(*domain.QuestCompletion)
	return c, args.Error(1)
}

type MockStreakService struct {
	mock.Mock
	cal streak.Calendar
}

func (m *MockStreakService) Status(ctx context.Context, userID string) domain.StreakEvaluation {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.StreakEvaluation)
}

func (m *MockStreakService) ClaimDaily(ctx context.Context, userID string) (*domain.DailyClaim, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(*domain.DailyClaim)
	return c, args.Error(1)
}

func (m *MockStreakService) PurchaseFreeze(ctx context.Context, userID string) (*domain.FreezePurchase, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.FreezePurchase)
	return p, args.Error(1)
}

func (m *MockStreakService) Affordability(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockStreakService) Calendar() streak.Calendar {
	return m.cal
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Spend(ctx context.Context, userID string, amount int, reference string) (*domain.GoldTransaction, error) {
	args := m.Called(ctx, userID, amount, reference)
	t, _ := args.Get(0).(*domain.GoldTransaction)
	return t, args.Error(1)
}

func (m *MockEconomyService) Grant(ctx context.Context, userID string, amount int, reason, reference string) (*domain.GoldTransaction, error) {
	args := m.Called(ctx, userID, amount, reason, reference)
	t, _ := args.Get(0).(*domain.GoldTransaction)
	return t, args.Error(1)
}

func (m *MockEconomyService) History(ctx context.Context, userID string, limit int) ([]domain.GoldTransaction, error) {
	args := m.Called(ctx, userID, limit)
	t, _ := args.Get(0).([]domain.GoldTransaction)
	return t, args.Error(1)
}

type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) ReserveFounderSpot(ctx context.Context, userID string) (*domain.FounderReservation, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*domain.FounderReservation)
	return r, args.Error(1)
}

func (m *MockSubscriptionService) Availability(ctx context.Context) (domain.FounderAvailability, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FounderAvailability), args.Error(1)
}

func (m *MockSubscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*domain.Purchase, error) {
	args := m.Called(ctx, payload, signature)
	p, _ := args.Get(0).(*domain.Purchase)
	return p, args.Error(1)
}

func (m *MockSubscriptionService) ExpireReservations(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
