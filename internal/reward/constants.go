package reward

// GoldPerXPDivisor converts quest XP into gold: floor(finalXP / 10)
const GoldPerXPDivisor = 10

// Breakdown lines, in the order they are appended
const (
	breakdownBase        = "base: %d xp"
	breakdownSkill       = "skill bonus: +%d xp (x%.2f)"
	breakdownStreak      = "streak bonus: +%d xp (%d-day streak)"
	breakdownMultitasker = "multitasker: +%d xp (%d quests today)"
	breakdownLucky       = "lucky proc: x2"
	breakdownFriday      = "double friday: x2"
	breakdownNoStack     = "doublers do not stack: x2 total"
	breakdownFinal       = "final: %d xp"
)
