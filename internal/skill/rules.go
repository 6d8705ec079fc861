package skill

import (
	"strings"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// EffectType defines how a rule changes a reward
type EffectType string

const (
	// EffectMultiplier adds Value to the XP multiplier stack
	EffectMultiplier EffectType = "multiplier"

	// EffectStreakMultiplier adds min(streak*Value, Cap) of base XP
	EffectStreakMultiplier EffectType = "streak_multiplier"

	// EffectLuckyChance adds Value to the lucky proc chance
	EffectLuckyChance EffectType = "lucky_chance"

	// EffectLuckyChanceScale multiplies the accumulated lucky chance by Value
	EffectLuckyChanceScale EffectType = "lucky_chance_scale"

	// EffectFlatBonus adds Value XP outside the multiplier stack
	EffectFlatBonus EffectType = "flat_bonus"

	// EffectDoubler doubles the final reward
	EffectDoubler EffectType = "doubler"
)

var knownEffects = map[EffectType]struct{}{
	EffectMultiplier:       {},
	EffectStreakMultiplier: {},
	EffectLuckyChance:      {},
	EffectLuckyChanceScale: {},
	EffectFlatBonus:        {},
	EffectDoubler:          {},
}

// Effect is the modifier a rule contributes
type Effect struct {
	Type  EffectType `json:"type" yaml:"type"`
	Value float64    `json:"value" yaml:"value"`
	Cap   float64    `json:"cap,omitempty" yaml:"cap,omitempty"`
}

// Condition is the predicate gating a rule. Zero fields always match.
type Condition struct {
	Difficulty     domain.Difficulty `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	MinStreak      int               `json:"min_streak,omitempty" yaml:"min_streak,omitempty"`
	MinQuestsToday int               `json:"min_quests_today,omitempty" yaml:"min_quests_today,omitempty"`
	Weekday        string            `json:"weekday,omitempty" yaml:"weekday,omitempty"`
}

// Context is what a condition is evaluated against
type Context struct {
	Difficulty           domain.Difficulty
	CurrentStreak        int
	QuestsCompletedToday int
	Weekday              time.Weekday
}

// Matches reports whether the condition holds for ctx
func (c Condition) Matches(ctx Context) bool {
	if c.Difficulty != "" && c.Difficulty != ctx.Difficulty {
		return false
	}
	if ctx.CurrentStreak < c.MinStreak {
		return false
	}
	if ctx.QuestsCompletedToday < c.MinQuestsToday {
		return false
	}
	if c.Weekday != "" {
		wd, ok := parseWeekday(c.Weekday)
		if !ok || wd != ctx.Weekday {
			return false
		}
	}
	return true
}

// Rule ties one skill to one effect under a condition
type Rule struct {
	SkillID string
	When    Condition
	Effect  Effect
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(s)]
	return wd, ok
}
