package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
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
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func testOptions(maxConns int) PoolOptions {
	return PoolOptions{MaxConns: maxConns, MinConns: 1, MaxConnIdle: time.Minute, MaxConnLife: 5 * time.Minute}
}

func TestConnect_InvalidConnString(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://%zz", testOptions(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestPoolOptions_Apply(t *testing.T) {
	tests := []struct {
		name     string
		opts     PoolOptions
		wantMax  int32
		wantMin  int32
		wantIdle time.Duration
	}{
		{"from config", PoolOptions{MaxConns: 8, MinConns: 3, MaxConnIdle: time.Minute}, 8, 3, time.Minute},
		{"unset falls back", PoolOptions{}, DefaultMaxConnections, DefaultMinConnections, 0},
		{"min capped by max", PoolOptions{MaxConns: 1, MinConns: 5}, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/habitquest")
			require.NoError(t, err)
			defaultIdle := pc.MaxConnIdleTime

			tt.opts.apply(pc)
			assert.Equal(t, tt.wantMax, pc.MaxConns)
			assert.Equal(t, tt.wantMin, pc.MinConns)
			if tt.wantIdle == 0 {
				assert.Equal(t, defaultIdle, pc.MaxConnIdleTime)
			} else {
				assert.Equal(t, tt.wantIdle, pc.MaxConnIdleTime)
			}
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{DBMaxConns: 12, DBMinConns: 4, DBConnIdle: time.Minute, DBConnLife: time.Hour}
	assert.Equal(t, PoolOptions{MaxConns: 12, MinConns: 4, MaxConnIdle: time.Minute, MaxConnLife: time.Hour}, OptionsFromConfig(cfg))
}

func TestMigrate_CreatesSchemaAndIsRepeatable(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	pool, err := Connect(ctx, testDBConnString, testOptions(4))
	require.NoError(t, err)
	defer pool.Close()

	checker, err := NewChecker(pool)
	require.NoError(t, err)
	assert.ErrorIs(t, checker.Check(ctx), ErrSchemaBehind, "not ready before migrating")

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "second run must be a no-op")
	require.NoError(t, checker.Check(ctx))

	tables := []string{
		"profiles", "user_skills", "quests", "gold_transactions",
		"daily_claims", "founder_reservations", "processed_webhook_events",
	}
	for _, table := range tables {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s", table)
	}
}

func TestMigrate_EnforcesNonNegativeGold(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	pool, err := Connect(ctx, testDBConnString, testOptions(4))
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, Migrate(ctx, pool))

	_, err = pool.Exec(ctx, `INSERT INTO profiles (user_id, gold) VALUES ('neg-gold', -1)`)
	assert.Error(t, err)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	requireDB(t)

	pool, err := Connect(context.Background(), testDBConnString, testOptions(10))
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			ctx := context.Background()
			conn, err := pool.Acquire(ctx)
			if err != nil {
				t.Errorf("worker %d failed to acquire connection: %v", id, err)
				return
			}
			defer conn.Release()

			var got int
			if err := conn.QueryRow(ctx, "SELECT $1::int", id).Scan(&got); err != nil {
				t.Errorf("worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "all connections should be released")
	checker.Check(2)
}
