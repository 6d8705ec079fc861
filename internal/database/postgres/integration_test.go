package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/habitquest/habitquest-go/internal/database"
	"github.com/habitquest/habitquest-go/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = setupDatabase(context.Background())
	}

	code := m.Run()
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupDatabase(ctx context.Context) (*pgxpool.Pool, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("habitquest_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, nil
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return nil, terminate
	}
	pool, err := database.Connect(ctx, connStr, database.PoolOptions{MaxConns: 10, MaxConnIdle: time.Minute, MaxConnLife: 5 * time.Minute})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return nil, terminate
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return nil, terminate
	}

	return pool, func() {
		pool.Close()
		terminate()
	}
}

func requirePool(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

func createProfile(t *testing.T, repo *ProfileRepository) *domain.Profile {
	t.Helper()
	p := &domain.Profile{UserID: "user-" + uuid.NewString(), DisplayName: "Tester", Level: 1}
	require.NoError(t, repo.CreateProfile(context.Background(), p))
	return p
}

func TestProfileRepository_Integration(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	repo := NewProfileRepository(testPool)

	t.Run("create and get", func(t *testing.T) {
		p := createProfile(t, repo)

		got, err := repo.GetProfile(ctx, p.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Level)
		assert.Equal(t, "Tester", got.DisplayName)
		assert.Empty(t, got.UnlockedSkills)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("duplicate create", func(t *testing.T) {
		p := createProfile(t, repo)
		err := repo.CreateProfile(ctx, &domain.Profile{UserID: p.UserID, Level: 1})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("missing profile", func(t *testing.T) {
		_, err := repo.GetProfile(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		_, err = repo.GetStreakState(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("skills are append only", func(t *testing.T) {
		p := createProfile(t, repo)

		added, err := repo.UnlockSkill(ctx, p.UserID, domain.SkillPower1)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = repo.UnlockSkill(ctx, p.UserID, domain.SkillPower1)
		require.NoError(t, err)
		assert.False(t, added)

		skills, err := repo.GetUnlockedSkills(ctx, p.UserID)
		require.NoError(t, err)
		assert.True(t, skills.Has(domain.SkillPower1))
		assert.Len(t, skills, 1)

		_, err = repo.UnlockSkill(ctx, "nobody", domain.SkillPower1)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("progression and streak update under lock", func(t *testing.T) {
		p := createProfile(t, repo)
		now := time.Now().UTC().Truncate(time.Microsecond)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		locked, err := tx.GetProfileForUpdate(ctx, p.UserID)
		require.NoError(t, err)
		assert.Equal(t, 0, locked.XP)

		require.NoError(t, tx.UpdateProgression(ctx, p.UserID, domain.ProgressionOutcome{XP: 250, Level: 3, Gold: 40}))
		require.NoError(t, tx.UpdateStreak(ctx, p.UserID, domain.StreakState{
			CurrentStreak: 4, LongestStreak: 9, FreezeCount: 2, LastDailyReward: &now, StreakUpdatedAt: &now,
		}))
		require.NoError(t, tx.RecordDailyClaim(ctx, p.UserID, &domain.DailyClaim{
			Evaluation: domain.StreakEvaluation{StreakCount: 4, Status: domain.StreakStatusActive},
			Reward:     domain.StreakReward{Day: 4, XP: 65},
			ClaimedAt:  now,
		}))
		require.NoError(t, tx.Commit(ctx))

		got, err := repo.GetProfile(ctx, p.UserID)
		require.NoError(t, err)
		assert.Equal(t, 250, got.XP)
		assert.Equal(t, 3, got.Level)
		assert.Equal(t, 40, got.Gold)

		s, err := repo.GetStreakState(ctx, p.UserID)
		require.NoError(t, err)
		assert.Equal(t, 4, s.CurrentStreak)
		assert.Equal(t, 9, s.LongestStreak)
		assert.Equal(t, 2, s.FreezeCount)
		require.NotNil(t, s.LastDailyReward)
		assert.True(t, now.Equal(*s.LastDailyReward))
	})

	t.Run("gold reference is idempotent", func(t *testing.T) {
		p := createProfile(t, repo)
		ref := "test:" + uuid.NewString()

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		ok, err := tx.RecordGoldTransaction(ctx, &domain.GoldTransaction{
			UserID: p.UserID, Amount: 30, Reason: domain.GoldReasonGrant, Reference: ref, BalanceAfter: 30,
		})
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = tx.RecordGoldTransaction(ctx, &domain.GoldTransaction{
			UserID: p.UserID, Amount: 30, Reason: domain.GoldReasonGrant, Reference: ref, BalanceAfter: 60,
		})
		require.NoError(t, err)
		assert.False(t, ok)
		require.NoError(t, tx.Commit(ctx))

		txns, err := repo.ListGoldTransactions(ctx, p.UserID, 10)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, 30, txns[0].BalanceAfter)

		tx, err = repo.BeginTx(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()
		stored, err := tx.GetGoldTransactionByReference(ctx, p.UserID, ref)
		require.NoError(t, err)
		assert.Equal(t, txns[0].ID, stored.ID)
		assert.Equal(t, 30, stored.BalanceAfter)
		_, err = tx.GetGoldTransactionByReference(ctx, p.UserID, "test:missing")
		assert.ErrorIs(t, err, domain.ErrLedgerRefNotFound)
	})

	t.Run("gold reference is scoped per user", func(t *testing.T) {
		alice := createProfile(t, repo)
		bob := createProfile(t, repo)
		ref := "order-" + uuid.NewString()

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		ok, err := tx.RecordGoldTransaction(ctx, &domain.GoldTransaction{
			UserID: alice.UserID, Amount: 25, Reason: domain.GoldReasonGrant, Reference: ref, BalanceAfter: 25,
		})
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = tx.RecordGoldTransaction(ctx, &domain.GoldTransaction{
			UserID: bob.UserID, Amount: 10, Reason: domain.GoldReasonGrant, Reference: ref, BalanceAfter: 10,
		})
		require.NoError(t, err)
		assert.True(t, ok, "another user's reference must not block this one")
		_, err = tx.GetGoldTransactionByReference(ctx, bob.UserID, ref)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		txns, err := repo.ListGoldTransactions(ctx, bob.UserID, 10)
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, 10, txns[0].Amount)
	})
}

func TestQuestRepository_Integration(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	profiles := NewProfileRepository(testPool)
	repo := NewQuestRepository(testPool)
	p := createProfile(t, profiles)

	q := &domain.Quest{ID: uuid.NewString(), UserID: p.UserID, Title: "Run 5k", Difficulty: domain.DifficultyHard, XPValue: 120}
	require.NoError(t, repo.CreateQuest(ctx, q))

	got, err := repo.GetQuest(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyHard, got.Difficulty)
	assert.Nil(t, got.CompletedAt)

	_, err = repo.GetQuest(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
	_, err = repo.GetQuest(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)

	err = repo.CreateQuest(ctx, &domain.Quest{ID: uuid.NewString(), UserID: "nobody", Title: "x", Difficulty: domain.DifficultyEasy})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	since := time.Now().Add(-time.Hour)
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	locked, err := tx.GetQuestForUpdate(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, locked.ID)
	require.NoError(t, tx.MarkQuestCompleted(ctx, q.ID, time.Now()))
	n, err := tx.CountCompletedSince(ctx, p.UserID, since)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, tx.Commit(ctx))

	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)
	err = tx.MarkQuestCompleted(ctx, q.ID, time.Now())
	assert.ErrorIs(t, err, domain.ErrQuestAlreadyCompleted)
	require.NoError(t, tx.Rollback(ctx))

	n, err = repo.CountCompletedSince(ctx, p.UserID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFounderRepository_Integration(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	profiles := NewProfileRepository(testPool)
	repo := NewFounderRepository(testPool)
	p := createProfile(t, profiles)
	other := createProfile(t, profiles)
	now := time.Now().UTC()

	confirmedBefore, reservedBefore, err := repo.CountSlots(ctx, now)
	require.NoError(t, err)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.LockFounderSlots(ctx))
	_, err = tx.GetActiveReservation(ctx, p.UserID, now)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	r := &domain.FounderReservation{
		ID: uuid.NewString(), UserID: p.UserID, Status: domain.ReservationPending,
		ExpiresAt: now.Add(10 * time.Minute), CreatedAt: now,
	}
	require.NoError(t, tx.CreateReservation(ctx, r))
	active, err := tx.GetActiveReservation(ctx, p.UserID, now)
	require.NoError(t, err)
	assert.Equal(t, r.ID, active.ID)
	require.NoError(t, tx.Commit(ctx))

	_, reserved, err := repo.CountSlots(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, reservedBefore+1, reserved)

	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)
	first, err := tx.MarkWebhookProcessed(ctx, "evt_"+r.ID, "checkout.session.completed")
	require.NoError(t, err)
	assert.True(t, first)
	assert.ErrorIs(t, tx.ConfirmReservation(ctx, "garbage", p.UserID, now), domain.ErrReservationNotFound)
	assert.ErrorIs(t, tx.ConfirmReservation(ctx, r.ID, other.UserID, now), domain.ErrReservationNotFound,
		"a reservation id from another user's metadata must not confirm")
	require.NoError(t, tx.ConfirmReservation(ctx, r.ID, p.UserID, now))
	require.NoError(t, tx.SetFounder(ctx, p.UserID))
	require.NoError(t, tx.Commit(ctx))

	confirmed, reserved, err := repo.CountSlots(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, confirmedBefore+1, confirmed)
	assert.Equal(t, reservedBefore, reserved)

	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)
	again, err := tx.MarkWebhookProcessed(ctx, "evt_"+r.ID, "checkout.session.completed")
	require.NoError(t, err)
	assert.False(t, again)
	assert.ErrorIs(t, tx.ConfirmReservation(ctx, r.ID, p.UserID, now), domain.ErrReservationNotFound)
	require.NoError(t, tx.Rollback(ctx))
}

func TestFounderRepository_ExpireReservations(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	profiles := NewProfileRepository(testPool)
	repo := NewFounderRepository(testPool)
	p := createProfile(t, profiles)
	now := time.Now().UTC()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateReservation(ctx, &domain.FounderReservation{
		ID: uuid.NewString(), UserID: p.UserID, Status: domain.ReservationPending,
		ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-20 * time.Minute),
	}))
	require.NoError(t, tx.Commit(ctx))

	n, err := repo.ExpireReservations(ctx, now)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	n, err = repo.ExpireReservations(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEventLogRepository_Integration(t *testing.T) {
	requirePool(t)
	ctx := context.Background()
	repo := NewEventLogRepository(testPool)
	userID := "user-" + uuid.NewString()

	require.NoError(t, repo.LogEvent(ctx, "level.up", &userID,
		map[string]interface{}{"user_id": userID, "new_level": 5},
		map[string]interface{}{"source": "quest"}))
	require.NoError(t, repo.LogEvent(ctx, "gold.changed", &userID,
		map[string]interface{}{"user_id": userID, "amount": -50}, nil))
	require.NoError(t, repo.LogEvent(ctx, "founder.reservations_expired", nil,
		map[string]interface{}{"expired": 2}, nil))

	got, err := repo.GetEventsByUser(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "gold.changed", got[0].EventType)
	assert.Equal(t, float64(-50), got[0].Payload["amount"])
	assert.Nil(t, got[0].Metadata)
	assert.Equal(t, "quest", got[1].Metadata["source"])

	got, err = repo.GetEventsByUser(ctx, userID, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = testPool.Exec(ctx, `UPDATE events SET created_at = NOW() - INTERVAL '40 days' WHERE user_id = $1`, userID)
	require.NoError(t, err)

	deleted, err := repo.CleanupOldEvents(ctx, 30)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(2))

	got, err = repo.GetEventsByUser(ctx, userID, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
