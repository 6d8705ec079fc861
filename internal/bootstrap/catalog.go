package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/habitquest/habitquest-go/internal/config"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/streak"
	"github.com/habitquest/habitquest-go/internal/validation"
)

// LoadSkillCatalog returns the catalog at cfg.SkillCatalogPath, or the built-in
// one when no path is set. DOUBLER_POLICY always wins over the file.
func LoadSkillCatalog(cfg *config.Config) (*skill.Catalog, error) {
	policy, err := skill.ParseDoublerPolicy(cfg.DoublerPolicy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPolicy, err)
	}

	if cfg.SkillCatalogPath == "" {
		slog.Info(LogMsgCatalogDefault, "doubler_policy", policy)
		return skill.DefaultCatalog().WithDoublerPolicy(policy), nil
	}

	catalog, err := skill.LoadCatalog(cfg.SkillCatalogPath, validation.NewSchemaValidator())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	return catalog.WithDoublerPolicy(policy), nil
}

// LoadCalendar parses DAY_BOUNDARY_TZ
func LoadCalendar(cfg *config.Config) (streak.Calendar, error) {
	cal, err := streak.ParseCalendar(cfg.DayBoundaryTZ)
	if err != nil {
		return streak.Calendar{}, fmt.Errorf("%s: %w", ErrMsgInvalidDayBoundary, err)
	}
	return cal, nil
}
