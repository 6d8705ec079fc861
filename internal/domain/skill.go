package domain

import "sort"

// Skill IDs of the built-in catalog
const (
	SkillPower1      = "power_1"
	SkillPower2      = "power_2"
	SkillPower3      = "power_3"
	SkillPower4      = "power_4"
	SkillEfficiency1 = "efficiency_1"
	SkillEfficiency2 = "efficiency_2"
	SkillEfficiency3 = "efficiency_3"
	SkillEfficiency4 = "efficiency_4"
	SkillEfficiency5 = "efficiency_5"
	SkillFortune1    = "fortune_1"
	SkillFortune2    = "fortune_2"
	SkillFortune3    = "fortune_3"
	SkillFortune4    = "fortune_4"
	SkillFortune5    = "fortune_5"
)

// Skill is a catalog entry. Effects live in the skill rule table, not here.
type Skill struct {
	ID          string `json:"id" yaml:"id"`
	Branch      string `json:"branch" yaml:"branch"`
	Tier        int    `json:"tier" yaml:"tier"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Description string `json:"description" yaml:"description"`
}

// SkillSet is the set of skill IDs a user has unlocked
type SkillSet map[string]struct{}

// NewSkillSet builds a set from a list of IDs
func NewSkillSet(ids ...string) SkillSet {
	s := make(SkillSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is unlocked
func (s SkillSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the unlocked skill IDs in sorted order
func (s SkillSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
