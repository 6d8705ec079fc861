package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/server"
	"github.com/habitquest/habitquest-go/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	LiveHub            *sse.Hub
	Background         *Background
	ResilientPublisher *event.ResilientPublisher
	Redis              *redis.Client
}

// GracefulShutdown stops components in dependency order:
// 1. Live hub (ends open streams), then the HTTP server
// 2. Scheduler, then worker pool (queued announcements and sweeps finish)
// 3. Event publisher (flush pending retries to the dead-letter file)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Server.Stop waits for open streams, which only end once the hub closes them
	if components.LiveHub != nil {
		components.LiveHub.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if bg := components.Background; bg != nil {
		if bg.Scheduler != nil {
			if err := bg.Scheduler.Stop(ctx); err != nil {
				slog.Error(LogMsgSchedulerStopFailed, "error", err)
			}
		}
		if bg.Pool != nil {
			bg.Pool.Stop()
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Redis != nil {
		if err := components.Redis.Close(); err != nil {
			slog.Error(LogMsgRedisCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
