// Command setup creates the HabitQuest database when missing and applies the
// embedded migrations. With -reset it drops the database first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/database"
)

const setupTimeout = 2 * time.Minute

func main() {
	reset := flag.Bool("reset", false, "drop the database before recreating it")
	flag.Parse()

	cfg := config.LoadDatabase()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := ensureDatabase(ctx, cfg, *reset); err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	pool, err := database.Connect(ctx, cfg.GetDBConnString(), database.OptionsFromConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.DBName, err)
	}
	defer pool.Close()

	log.Println("Running migrations...")
	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✅ Database ready")
}

func ensureDatabase(ctx context.Context, cfg *config.Config, reset bool) error {
	conn, err := pgx.Connect(ctx, cfg.GetServerConnString())
	if err != nil {
		return fmt.Errorf("connect to postgres server: %w", err)
	}
	defer conn.Close(context.Background())

	name := pgx.Identifier{cfg.DBName}.Sanitize()

	if reset {
		log.Printf("Terminating connections to %s...", cfg.DBName)
		if _, err := conn.Exec(ctx, `
			SELECT pg_terminate_backend(pid)
			FROM pg_stat_activity
			WHERE datname = $1 AND pid <> pg_backend_pid()`, cfg.DBName); err != nil {
			log.Printf("Warning: failed to terminate connections: %v", err)
		}

		log.Printf("Dropping database %s if it exists...", cfg.DBName)
		if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+name); err != nil {
			return fmt.Errorf("drop database: %w", err)
		}
	}

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists); err != nil {
		return fmt.Errorf("check database: %w", err)
	}
	if exists {
		log.Printf("Database %s already exists", cfg.DBName)
		return nil
	}

	log.Printf("Creating database %s...", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+name); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}
