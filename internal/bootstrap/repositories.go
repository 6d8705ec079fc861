package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habitquest/habitquest-go/internal/database/postgres"
	"github.com/habitquest/habitquest-go/internal/eventlog"
	"github.com/habitquest/habitquest-go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Profiles repository.Profile
	Quests   repository.Quest
	Founders repository.Founder
	EventLog eventlog.Repository
}

// InitializeRepositories creates the postgres-backed repositories
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Profiles: postgres.NewProfileRepository(dbPool),
		Quests:   postgres.NewQuestRepository(dbPool),
		Founders: postgres.NewFounderRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
