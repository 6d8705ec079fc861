// Package reward combines skill, streak and doubler effects into the final
// XP for one quest completion.
package reward

import (
	"fmt"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/utils"
)

// Input describes one completion for the extended calculation
type Input struct {
	Skills               domain.SkillSet
	Difficulty           domain.Difficulty
	BaseXP               int
	CurrentStreak        int
	QuestsCompletedToday int
	Weekday              time.Weekday
}

// Aggregator computes rewards against a skill catalog and a random source
type Aggregator struct {
	catalog *skill.Catalog
	rnd     func() float64
}

// NewAggregator returns an aggregator. A nil catalog uses the built-in one and
// a nil rnd uses utils.RandomFloat.
func NewAggregator(catalog *skill.Catalog, rnd func() float64) *Aggregator {
	if catalog == nil {
		catalog = skill.DefaultCatalog()
	}
	if rnd == nil {
		rnd = utils.RandomFloat
	}
	return &Aggregator{catalog: catalog, rnd: rnd}
}

// Catalog returns the catalog rewards are computed against
func (a *Aggregator) Catalog() *skill.Catalog {
	return a.catalog
}

// CalculateFinalXP applies skill bonus, streak bonus and the lucky doubler in
// that order. Doubling is applied to the summed total.
func (a *Aggregator) CalculateFinalXP(skills domain.SkillSet, difficulty domain.Difficulty, baseXP, currentStreak int) (domain.RewardResult, error) {
	return a.calculate(Input{
		Skills:        skills,
		Difficulty:    difficulty,
		BaseXP:        baseXP,
		CurrentStreak: currentStreak,
	}, false)
}

// Calculate extends CalculateFinalXP with the multitasker bonus, which joins
// the preliminary total, and the weekday doubler, combined with the lucky
// doubler under the catalog's DoublerPolicy.
func (a *Aggregator) Calculate(in Input) (domain.RewardResult, error) {
	return a.calculate(in, true)
}

func (a *Aggregator) calculate(in Input, extended bool) (domain.RewardResult, error) {
	bonus, err := a.catalog.XPBonus(in.Skills, in.Difficulty, in.BaseXP)
	if err != nil {
		return domain.RewardResult{}, err
	}
	streakBonus, err := a.catalog.StreakBonus(in.Skills, in.CurrentStreak, in.BaseXP)
	if err != nil {
		return domain.RewardResult{}, err
	}

	res := domain.RewardResult{
		BaseXP:        in.BaseXP,
		SkillBonusXP:  bonus.BonusXP,
		StreakBonusXP: streakBonus,
		Multiplier:    bonus.Multiplier,
	}
	res.Breakdown = append(res.Breakdown, fmt.Sprintf(breakdownBase, in.BaseXP))
	if bonus.BonusXP > 0 {
		res.Breakdown = append(res.Breakdown, fmt.Sprintf(breakdownSkill, bonus.BonusXP, bonus.Multiplier))
	}
	if streakBonus > 0 {
		res.Breakdown = append(res.Breakdown, fmt.Sprintf(breakdownStreak, streakBonus, in.CurrentStreak))
	}

	preliminary := bonus.TotalXP + streakBonus
	if extended {
		res.MultitaskerXP = a.catalog.MultitaskerBonus(in.Skills, in.QuestsCompletedToday)
		if res.MultitaskerXP > 0 {
			preliminary += res.MultitaskerXP
			res.Breakdown = append(res.Breakdown, fmt.Sprintf(breakdownMultitasker, res.MultitaskerXP, in.QuestsCompletedToday))
		}
	}

	doublers := 0
	res.LuckyProc = a.catalog.CheckLuckyProc(in.Skills, a.rnd)
	if res.LuckyProc {
		doublers++
		res.Breakdown = append(res.Breakdown, breakdownLucky)
	}
	if extended && a.catalog.IsDoubleFriday(in.Skills, in.Weekday) {
		res.DoubleFriday = true
		doublers++
		res.Breakdown = append(res.Breakdown, breakdownFriday)
	}

	factor := a.catalog.DoublerPolicy().Factor(doublers)
	if doublers > 1 && factor == 2 {
		res.Breakdown = append(res.Breakdown, breakdownNoStack)
	}
	res.FinalXP = preliminary * factor
	res.Breakdown = append(res.Breakdown, fmt.Sprintf(breakdownFinal, res.FinalXP))
	return res, nil
}

// GoldForXP is the gold credited alongside a quest's final XP
func GoldForXP(finalXP int) int {
	if finalXP <= 0 {
		return 0
	}
	return finalXP / GoldPerXPDivisor
}
