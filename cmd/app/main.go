// @title HabitQuest API
// @version 1.0
// @description Gamified habit tracking: quests, XP and levels, daily streaks, gold and founder memberships.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// day-boundary zones must resolve in minimal containers
	_ "time/tzdata"

	"github.com/habitquest/habitquest-go/internal/bootstrap"
	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/database"
	"github.com/habitquest/habitquest-go/internal/server"
	"github.com/habitquest/habitquest-go/internal/sse"
)

const (
	initTimeout     = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg, os.Stdout)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "detail", w)
	}

	if err := run(cfg); err != nil {
		slog.Error("HabitQuest exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	catalog, err := bootstrap.LoadSkillCatalog(cfg)
	if err != nil {
		return err
	}
	cal, err := bootstrap.LoadCalendar(cfg)
	if err != nil {
		return err
	}

	initCtx, initCancel := context.WithTimeout(context.Background(), initTimeout)
	defer initCancel()

	dbPool, err := database.Connect(initCtx, cfg.GetDBConnString(), database.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(initCtx, dbPool); err != nil {
		return err
	}
	readiness, err := database.NewChecker(dbPool)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem("")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos := bootstrap.InitializeRepositories(dbPool)
	svcs := bootstrap.InitializeServices(cfg, repos, publisher, catalog, cal)
	svcs.Live = sse.NewHub()
	svcs.Live.Start()

	pool := bootstrap.NewWorkerPool(ctx, cfg)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		UserService:     svcs.Users,
		EventLogService: svcs.Activity,
		LiveHub:         svcs.Live,
		Pool:            pool,
		Config:          cfg,
	}); err != nil {
		pool.Stop()
		svcs.Live.Stop()
		return err
	}

	background, err := bootstrap.StartBackground(ctx, cfg, pool, svcs.Subscriptions, svcs.Activity, cal)
	if err != nil {
		pool.Stop()
		svcs.Live.Stop()
		return err
	}

	limiter, redisClient := bootstrap.InitializeRateLimiter(initCtx, cfg)

	srv := server.NewServer(server.Config{
		Port:               cfg.Port,
		APIKey:             cfg.APIKey,
		TrustedProxies:     cfg.TrustedProxies,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, readiness, svcs, limiter)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case runErr = <-serveErr:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		LiveHub:            svcs.Live,
		Background:         background,
		ResilientPublisher: publisher,
		Redis:              redisClient,
	})

	return runErr
}
