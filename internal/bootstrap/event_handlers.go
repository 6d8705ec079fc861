package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/eventlog"
	"github.com/habitquest/habitquest-go/internal/metrics"
	"github.com/habitquest/habitquest-go/internal/notify"
	"github.com/habitquest/habitquest-go/internal/sse"
	"github.com/habitquest/habitquest-go/internal/user"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	UserService     user.Service
	EventLogService eventlog.Service
	LiveHub         *sse.Hub
	Pool            notify.Enqueuer
	Config          *config.Config
	// Executor overrides the discord session, for tests
	Executor notify.WebhookExecutor
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (business counters and the founder gauge)
// - Profile cache invalidation on every user-scoped event
// - Event log persistence (when an event log service is provided)
// - Live stream fan-out (when a hub is provided)
// - Discord announcer, when a webhook is configured
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	invalidate := func(_ context.Context, evt event.Event) error {
		if id := evt.UserID(); id != "" {
			deps.UserService.InvalidateProfile(id)
		}
		return nil
	}
	for _, t := range event.UserTypes {
		deps.EventBus.Subscribe(t, invalidate)
	}
	slog.Info(LogMsgProfileInvalidationWired, "event_types", len(event.UserTypes))

	if deps.EventLogService != nil {
		deps.EventLogService.Subscribe(deps.EventBus)
		slog.Info(LogMsgEventLoggerInitialized)
	}

	if deps.LiveHub != nil {
		sse.NewSubscriber(deps.LiveHub).Subscribe(deps.EventBus)
	}

	if !deps.Config.DiscordEnabled() {
		slog.Info(LogMsgAnnouncerDisabled)
		return nil
	}

	exec := deps.Executor
	if exec == nil {
		// webhook execution needs no bot token
		session, err := discordgo.New("")
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSession, err)
		}
		exec = session
	}

	announcer := notify.NewAnnouncer(exec, deps.Pool, deps.UserService, notify.Config{
		WebhookID:    deps.Config.DiscordWebhookID,
		WebhookToken: deps.Config.DiscordWebhookToken,
	})
	announcer.Register(deps.EventBus)
	slog.Info(LogMsgAnnouncerRegistered)

	return nil
}
