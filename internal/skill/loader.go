package skill

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/habitquest/habitquest-go/internal/validation"
)

type catalogFile struct {
	DoublerPolicy string  `yaml:"doubler_policy"`
	Skills        []Entry `yaml:"skills"`
}

// LoadCatalog reads and validates a YAML skill catalog from disk
func LoadCatalog(path string, schemas validation.SchemaValidator) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalog, path, err)
	}

	c, err := ParseCatalog(data, schemas)
	if err != nil {
		return nil, err
	}

	slog.Info(LogMsgCatalogLoaded, "path", path, "skills", len(c.skills), "rules", len(c.rules))
	return c, nil
}

// ParseCatalog builds a catalog from YAML bytes
func ParseCatalog(data []byte, schemas validation.SchemaValidator) (*Catalog, error) {
	if err := schemas.ValidateYAML(data, catalogSchema); err != nil {
		return nil, fmt.Errorf(ErrMsgValidateCatalog, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalog, err)
	}

	policy := DoublerSingle
	if file.DoublerPolicy != "" {
		p, err := ParseDoublerPolicy(file.DoublerPolicy)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	if err := checkEntries(file.Skills); err != nil {
		return nil, err
	}

	return NewCatalog(policy, file.Skills), nil
}

// checkEntries catches what the schema cannot: duplicates and cross-field rules
func checkEntries(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf(ErrMsgDuplicateSkill, e.ID)
		}
		seen[e.ID] = struct{}{}

		for _, spec := range e.Effects {
			if _, ok := knownEffects[spec.Type]; !ok {
				return fmt.Errorf(ErrMsgUnknownEffect, e.ID, spec.Type)
			}
			if spec.When.Weekday != "" {
				if _, ok := parseWeekday(spec.When.Weekday); !ok {
					return fmt.Errorf(ErrMsgUnknownWeekday, e.ID, spec.When.Weekday)
				}
			}
			if spec.When.Difficulty != "" && !spec.When.Difficulty.Valid() {
				return fmt.Errorf(ErrMsgInvalidCondition, e.ID, spec.When.Difficulty)
			}
		}
	}
	return nil
}
