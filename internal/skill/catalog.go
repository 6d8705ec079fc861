package skill

import (
	"fmt"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// DoublerPolicy decides how several active doublers combine
type DoublerPolicy string

const (
	// DoublerSingle applies one doubling no matter how many doublers fire
	DoublerSingle DoublerPolicy = "single"
	// DoublerStack applies every doubler (lucky + Friday = x4)
	DoublerStack DoublerPolicy = "stack"
)

// Factor returns the reward multiplier for the number of active doublers
func (p DoublerPolicy) Factor(active int) int {
	if active <= 0 {
		return 1
	}
	if p == DoublerStack {
		return 1 << active
	}
	return 2
}

// ParseDoublerPolicy validates a policy name
func ParseDoublerPolicy(s string) (DoublerPolicy, error) {
	switch DoublerPolicy(s) {
	case DoublerSingle, DoublerStack:
		return DoublerPolicy(s), nil
	}
	return "", fmt.Errorf(ErrMsgUnknownPolicy, s)
}

// Entry is a catalog skill together with its effects
type Entry struct {
	domain.Skill `yaml:",inline"`
	Effects      []RuleSpec `yaml:"effects"`
}

// RuleSpec is one effect of an entry as written in the catalog file
type RuleSpec struct {
	When   Condition `yaml:"when,omitempty"`
	Effect `yaml:",inline"`
}

// Catalog is the immutable skill table the reward pipeline folds over
type Catalog struct {
	skills []domain.Skill
	byID   map[string]domain.Skill
	rules  []Rule
	policy DoublerPolicy
}

// NewCatalog builds a catalog from entries in table order
func NewCatalog(policy DoublerPolicy, entries []Entry) *Catalog {
	c := &Catalog{
		byID:   make(map[string]domain.Skill, len(entries)),
		policy: policy,
	}
	for _, e := range entries {
		s := e.Skill
		if s.DisplayName == "" {
			s.DisplayName = DisplayName(s.ID)
		}
		c.skills = append(c.skills, s)
		c.byID[s.ID] = s
		for _, spec := range e.Effects {
			c.rules = append(c.rules, Rule{SkillID: s.ID, When: spec.When, Effect: spec.Effect})
		}
	}
	return c
}

// Skills lists the catalog in table order
func (c *Catalog) Skills() []domain.Skill {
	out := make([]domain.Skill, len(c.skills))
	copy(out, c.skills)
	return out
}

// Skill looks up a catalog entry
func (c *Catalog) Skill(id string) (domain.Skill, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Rules returns the flattened rule table
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// DoublerPolicy returns how doublers combine under this catalog
func (c *Catalog) DoublerPolicy() DoublerPolicy {
	return c.policy
}

// WithDoublerPolicy returns a copy of the catalog using policy
func (c *Catalog) WithDoublerPolicy(policy DoublerPolicy) *Catalog {
	cp := *c
	cp.policy = policy
	return &cp
}

// fold calls fn for each rule of type t whose skill is unlocked and whose condition holds.
// Unknown skill ids in the set never match a rule and are ignored.
func (c *Catalog) fold(skills domain.SkillSet, ctx Context, t EffectType, fn func(Rule)) {
	for _, r := range c.rules {
		if r.Effect.Type != t || !skills.Has(r.SkillID) || !r.When.Matches(ctx) {
			continue
		}
		fn(r)
	}
}

// DefaultCatalog is the built-in skill table
func DefaultCatalog() *Catalog {
	return NewCatalog(DoublerSingle, []Entry{
		{
			Skill: domain.Skill{ID: domain.SkillPower1, Branch: BranchPower, Tier: 1, Description: "+5% quest XP"},
			Effects: []RuleSpec{
				{Effect: Effect{Type: EffectMultiplier, Value: 0.05}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillPower2, Branch: BranchPower, Tier: 2, Description: "+5% quest XP"},
			Effects: []RuleSpec{
				{Effect: Effect{Type: EffectMultiplier, Value: 0.05}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillPower3, Branch: BranchPower, Tier: 3, Description: "+20% XP on hard quests"},
			Effects: []RuleSpec{
				{When: Condition{Difficulty: domain.DifficultyHard}, Effect: Effect{Type: EffectMultiplier, Value: 0.20}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillPower4, Branch: BranchPower, Tier: 4, Description: "+2% XP per streak day from day 3, up to +20%"},
			Effects: []RuleSpec{
				{When: Condition{MinStreak: 3}, Effect: Effect{Type: EffectStreakMultiplier, Value: 0.02, Cap: 0.20}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillEfficiency1, Branch: BranchEfficiency, Tier: 1, Description: "+20% XP on easy quests"},
			Effects: []RuleSpec{
				{When: Condition{Difficulty: domain.DifficultyEasy}, Effect: Effect{Type: EffectMultiplier, Value: 0.20}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillEfficiency2, Branch: BranchEfficiency, Tier: 2, Description: "+30% XP on easy quests"},
			Effects: []RuleSpec{
				{When: Condition{Difficulty: domain.DifficultyEasy}, Effect: Effect{Type: EffectMultiplier, Value: 0.30}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillEfficiency3, Branch: BranchEfficiency, Tier: 3, Description: "+50 XP once 5 quests are done today"},
			Effects: []RuleSpec{
				{When: Condition{MinQuestsToday: 5}, Effect: Effect{Type: EffectFlatBonus, Value: 50}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillEfficiency4, Branch: BranchEfficiency, Tier: 4, Description: "Quest planning perks"},
		},
		{
			Skill: domain.Skill{ID: domain.SkillEfficiency5, Branch: BranchEfficiency, Tier: 5, Description: "Double XP on Fridays"},
			Effects: []RuleSpec{
				{When: Condition{Weekday: "friday"}, Effect: Effect{Type: EffectDoubler, Value: 2}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillFortune1, Branch: BranchFortune, Tier: 1, Description: "+10% lucky chance"},
			Effects: []RuleSpec{
				{Effect: Effect{Type: EffectLuckyChance, Value: 0.10}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillFortune2, Branch: BranchFortune, Tier: 2, Description: "+10% lucky chance"},
			Effects: []RuleSpec{
				{Effect: Effect{Type: EffectLuckyChance, Value: 0.10}},
			},
		},
		{
			Skill: domain.Skill{ID: domain.SkillFortune3, Branch: BranchFortune, Tier: 3, Description: "Gold find perks"},
		},
		{
			Skill: domain.Skill{ID: domain.SkillFortune4, Branch: BranchFortune, Tier: 4, Description: "Gold find perks"},
		},
		{
			Skill: domain.Skill{ID: domain.SkillFortune5, Branch: BranchFortune, Tier: 5, Description: "Doubles lucky chance"},
			Effects: []RuleSpec{
				{Effect: Effect{Type: EffectLuckyChanceScale, Value: 2}},
			},
		},
	})
}
