package skill

import (
	"fmt"
	"math"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
)

func toBasisPoints(v float64) int {
	return int(math.Round(v * basisPoints))
}

// XPBonus computes the additive multiplier stack for a quest.
// Negative base XP or an unknown difficulty is a validation failure.
func (c *Catalog) XPBonus(skills domain.SkillSet, difficulty domain.Difficulty, baseXP int) (domain.XPBonus, error) {
	if !difficulty.Valid() {
		return domain.XPBonus{}, domain.NewValidationFailure(domain.ErrInvalidDifficulty, fmt.Sprintf("unknown difficulty %q", difficulty))
	}
	if baseXP < 0 {
		return domain.XPBonus{}, domain.NewValidationFailure(domain.ErrNegativeXP, fmt.Sprintf("base xp %d", baseXP))
	}

	bps := 0
	c.fold(skills, Context{Difficulty: difficulty}, EffectMultiplier, func(r Rule) {
		bps += toBasisPoints(r.Effect.Value)
	})
	if bps < 0 {
		bps = 0
	}

	bonus := baseXP * bps / basisPoints
	return domain.XPBonus{
		Multiplier: 1 + float64(bps)/basisPoints,
		BonusXP:    bonus,
		TotalXP:    baseXP + bonus,
	}, nil
}

// StreakBonus computes the streak-scaled bonus against base XP.
// It is added to, never multiplied with, the skill bonus total.
func (c *Catalog) StreakBonus(skills domain.SkillSet, currentStreak, baseXP int) (int, error) {
	if baseXP < 0 {
		return 0, domain.NewValidationFailure(domain.ErrNegativeXP, fmt.Sprintf("base xp %d", baseXP))
	}
	if currentStreak < 0 {
		return 0, domain.NewValidationFailure(domain.ErrInvalidInput, fmt.Sprintf("streak %d", currentStreak))
	}

	bps := 0
	c.fold(skills, Context{CurrentStreak: currentStreak}, EffectStreakMultiplier, func(r Rule) {
		perDay := toBasisPoints(r.Effect.Value)
		capped := toBasisPoints(r.Effect.Cap)
		bps += min(currentStreak*perDay, capped)
	})
	if bps <= 0 {
		return 0, nil
	}
	return baseXP * bps / basisPoints, nil
}

// LuckyChance sums lucky chances then applies every chance scale
func (c *Catalog) LuckyChance(skills domain.SkillSet) float64 {
	chance := 0.0
	c.fold(skills, Context{}, EffectLuckyChance, func(r Rule) {
		chance += r.Effect.Value
	})
	c.fold(skills, Context{}, EffectLuckyChanceScale, func(r Rule) {
		chance *= r.Effect.Value
	})
	return math.Max(0, math.Min(chance, 1))
}

// CheckLuckyProc makes exactly one draw from rnd
func (c *Catalog) CheckLuckyProc(skills domain.SkillSet, rnd func() float64) bool {
	return rnd() < c.LuckyChance(skills)
}

// MultitaskerBonus is the flat XP bonus for busy days
func (c *Catalog) MultitaskerBonus(skills domain.SkillSet, questsCompletedToday int) int {
	bonus := 0
	c.fold(skills, Context{QuestsCompletedToday: questsCompletedToday}, EffectFlatBonus, func(r Rule) {
		bonus += int(r.Effect.Value)
	})
	return bonus
}

// ActiveDoublers returns the skill ids whose doubler applies on weekday
func (c *Catalog) ActiveDoublers(skills domain.SkillSet, weekday time.Weekday) []string {
	var ids []string
	c.fold(skills, Context{Weekday: weekday}, EffectDoubler, func(r Rule) {
		ids = append(ids, r.SkillID)
	})
	return ids
}

// IsDoubleFriday reports whether efficiency_5 doubles rewards on weekday
func (c *Catalog) IsDoubleFriday(skills domain.SkillSet, weekday time.Weekday) bool {
	for _, id := range c.ActiveDoublers(skills, weekday) {
		if id == domain.SkillEfficiency5 {
			return true
		}
	}
	return false
}

var defaultCatalog = DefaultCatalog()

// CalculateXPBonus uses the built-in catalog
func CalculateXPBonus(skills domain.SkillSet, difficulty domain.Difficulty, baseXP int) (domain.XPBonus, error) {
	return defaultCatalog.XPBonus(skills, difficulty, baseXP)
}

// StreakBonus uses the built-in catalog
func StreakBonus(skills domain.SkillSet, currentStreak, baseXP int) (int, error) {
	return defaultCatalog.StreakBonus(skills, currentStreak, baseXP)
}

// LuckyChance uses the built-in catalog
func LuckyChance(skills domain.SkillSet) float64 {
	return defaultCatalog.LuckyChance(skills)
}

// CheckLuckyProc uses the built-in catalog
func CheckLuckyProc(skills domain.SkillSet, rnd func() float64) bool {
	return defaultCatalog.CheckLuckyProc(skills, rnd)
}

// MultitaskerBonus uses the built-in catalog
func MultitaskerBonus(skills domain.SkillSet, questsCompletedToday int) int {
	return defaultCatalog.MultitaskerBonus(skills, questsCompletedToday)
}

// IsDoubleFriday uses the built-in catalog
func IsDoubleFriday(skills domain.SkillSet, weekday time.Weekday) bool {
	return defaultCatalog.IsDoubleFriday(skills, weekday)
}
