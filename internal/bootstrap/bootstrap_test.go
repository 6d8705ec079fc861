package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/eventlog"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/sse"
	"github.com/habitquest/habitquest-go/internal/worker"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Environment:       "test",
		DayBoundaryTZ:     "UTC",
		DoublerPolicy:     config.DoublerPolicySingle,
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
		WorkerCount:       1,
		WorkerQueue:       4,
	}
}

func TestLoadSkillCatalog(t *testing.T) {
	t.Run("built-in catalog with policy override", func(t *testing.T) {
		cfg := testConfig()
		cfg.DoublerPolicy = config.DoublerPolicyStack

		c, err := LoadSkillCatalog(cfg)
		require.NoError(t, err)
		assert.Equal(t, skill.DoublerStack, c.DoublerPolicy())
		assert.Equal(t, skill.DefaultCatalog().Skills(), c.Skills())
	})

	t.Run("file catalog", func(t *testing.T) {
		cfg := testConfig()
		cfg.SkillCatalogPath = filepath.Join("..", "..", "configs", "skills.yaml")

		c, err := LoadSkillCatalog(cfg)
		require.NoError(t, err)
		assert.Equal(t, skill.DoublerSingle, c.DoublerPolicy())
		assert.NotEmpty(t, c.Skills())
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := testConfig()
		cfg.SkillCatalogPath = filepath.Join(t.TempDir(), "nope.yaml")

		_, err := LoadSkillCatalog(cfg)
		assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
	})

	t.Run("bad policy", func(t *testing.T) {
		cfg := testConfig()
		cfg.DoublerPolicy = "triple"

		_, err := LoadSkillCatalog(cfg)
		assert.ErrorContains(t, err, ErrMsgInvalidPolicy)
	})
}

func TestLoadCalendar(t *testing.T) {
	cfg := testConfig()
	cfg.DayBoundaryTZ = "UTC+05:30"
	cal, err := LoadCalendar(cfg)
	require.NoError(t, err)
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, cal.Location()).Zone()
	assert.Equal(t, 5*3600+30*60, offset)

	cfg.DayBoundaryTZ = "Mars/Olympus"
	_, err = LoadCalendar(cfg)
	assert.ErrorContains(t, err, ErrMsgInvalidDayBoundary)
}

func TestInitializeRateLimiter_FallsBackToMemory(t *testing.T) {
	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	limiter, client := InitializeRateLimiter(context.Background(), cfg)
	assert.NotNil(t, limiter)
	assert.Nil(t, client)
}

func TestInitializeEventSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl", "events.jsonl")
	bus, publisher, err := InitializeEventSystem(path)
	require.NoError(t, err)
	require.NotNil(t, bus)
	assert.DirExists(t, filepath.Dir(path))
	require.NoError(t, publisher.Shutdown(context.Background()))
}

type fakeUsers struct {
	invalidated []string
}

func (f *fakeUsers) CreateProfile(context.Context, string, string) (*domain.Profile, error) {
	return nil, nil
}

func (f *fakeUsers) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	return &domain.Profile{UserID: userID, DisplayName: "Ada"}, nil
}

func (f *fakeUsers) GetSkills(context.Context, string) ([]domain.Skill, error) { return nil, nil }

func (f *fakeUsers) GrantSkill(context.Context, string, string) (bool, error) { return false, nil }

func (f *fakeUsers) InvalidateProfile(userID string) {
	f.invalidated = append(f.invalidated, userID)
}

type inlinePool struct{}

func (inlinePool) Enqueue(job worker.Job) bool {
	_ = job.Process(context.Background())
	return true
}

type recordingExecutor struct {
	sent []*discordgo.WebhookParams
}

func (r *recordingExecutor) WebhookExecute(_, _ string, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.sent = append(r.sent, data)
	return &discordgo.Message{}, nil
}

type fakeEventLog struct {
	subscribed bool
}

func (f *fakeEventLog) Subscribe(event.Bus) { f.subscribed = true }

func (f *fakeEventLog) Recent(context.Context, string, int) ([]eventlog.Entry, error) {
	return nil, nil
}

func (f *fakeEventLog) CleanupOldEvents(context.Context, int) (int64, error) { return 0, nil }

func TestRegisterEventHandlers(t *testing.T) {
	t.Run("invalidates profiles and announces milestones", func(t *testing.T) {
		bus := event.NewMemoryBus()
		users := &fakeUsers{}
		exec := &recordingExecutor{}
		cfg := testConfig()
		cfg.DiscordWebhookID = "hook"
		cfg.DiscordWebhookToken = "tok"

		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{
			EventBus:    bus,
			UserService: users,
			Pool:        inlinePool{},
			Config:      cfg,
			Executor:    exec,
		}))

		require.NoError(t, bus.Publish(context.Background(), event.NewLevelUpEvent("u1", 4, 5, "quest")))

		assert.Equal(t, []string{"u1"}, users.invalidated)
		require.Len(t, exec.sent, 1)
		require.Len(t, exec.sent[0].Embeds, 1)
	})

	t.Run("no webhook configured", func(t *testing.T) {
		bus := event.NewMemoryBus()
		users := &fakeUsers{}
		exec := &recordingExecutor{}

		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{
			EventBus:    bus,
			UserService: users,
			Pool:        inlinePool{},
			Config:      testConfig(),
			Executor:    exec,
		}))

		require.NoError(t, bus.Publish(context.Background(), event.NewLevelUpEvent("u2", 4, 5, "quest")))
		assert.Equal(t, []string{"u2"}, users.invalidated)
		assert.Empty(t, exec.sent)
	})

	t.Run("subscribes the event log", func(t *testing.T) {
		log := &fakeEventLog{}

		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{
			EventBus:        event.NewMemoryBus(),
			UserService:     &fakeUsers{},
			EventLogService: log,
			Pool:            inlinePool{},
			Config:          testConfig(),
		}))

		assert.True(t, log.subscribed)
	})

	t.Run("forwards to the live hub", func(t *testing.T) {
		bus := event.NewMemoryBus()
		hub := sse.NewHub()
		hub.Start()
		defer hub.Stop()

		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{
			EventBus:    bus,
			UserService: &fakeUsers{},
			LiveHub:     hub,
			Pool:        inlinePool{},
			Config:      testConfig(),
		}))

		client := hub.Register(nil, "u3")
		require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

		require.NoError(t, bus.Publish(context.Background(), event.NewLevelUpEvent("u3", 1, 2, "quest")))

		select {
		case evt := <-client.EventChannel:
			assert.Equal(t, "u3", evt.UserID)
		case <-time.After(time.Second):
			t.Fatal("no live event")
		}
	})
}

func TestStartBackground_RejectsBadSpec(t *testing.T) {
	cfg := testConfig()
	cfg.CronReservationSweep = "not a spec"
	cfg.CronFounderGauge = "@every 1m"

	pool := NewWorkerPool(context.Background(), cfg)
	defer pool.Stop()

	cal, err := LoadCalendar(cfg)
	require.NoError(t, err)

	_, err = StartBackground(context.Background(), cfg, pool, nil, nil, cal)
	assert.ErrorContains(t, err, ErrMsgFailedScheduleJob)
}

func TestGracefulShutdown_ToleratesMissingComponents(t *testing.T) {
	cfg := testConfig()
	pool := NewWorkerPool(context.Background(), cfg)

	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{Background: &Background{Pool: pool}, LiveHub: sse.NewHub()})
	})
	assert.False(t, pool.Enqueue(worker.JobFunc(func(context.Context) error { return nil })))
}
