package bootstrap

import (
	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/economy"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/eventlog"
	"github.com/habitquest/habitquest-go/internal/quest"
	"github.com/habitquest/habitquest-go/internal/reward"
	"github.com/habitquest/habitquest-go/internal/server"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/streak"
	"github.com/habitquest/habitquest-go/internal/subscription"
	"github.com/habitquest/habitquest-go/internal/user"
	"github.com/habitquest/habitquest-go/internal/utils"
)

// InitializeServices builds every domain service on top of repos. All of them
// publish through publisher.
func InitializeServices(cfg *config.Config, repos *Repositories, publisher event.Publisher, catalog *skill.Catalog, cal streak.Calendar) server.Services {
	aggregator := reward.NewAggregator(catalog, utils.RandomFloat)

	return server.Services{
		Users: user.NewService(repos.Profiles, catalog, user.CacheConfig{
			Size: ProfileCacheSize,
			TTL:  cfg.ProfileCacheTTL,
		}),
		Quests:  quest.NewService(repos.Quests, aggregator, cal, publisher),
		Streaks: streak.NewService(repos.Profiles, publisher, cal, streak.WithStatusCache(StreakCacheSize, cfg.ProfileCacheTTL)),
		Economy: economy.NewService(repos.Profiles, publisher),
		Subscriptions: subscription.NewService(repos.Founders, publisher, subscription.Config{
			Slots:          cfg.FounderSlots,
			ReservationTTL: cfg.FounderReservationTTL,
			WebhookSecret:  cfg.StripeWebhookSecret,
		}),
		Activity: eventlog.NewService(repos.EventLog),
		Catalog:  catalog,
	}
}
