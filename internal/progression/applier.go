package progression

import "github.com/habitquest/habitquest-go/internal/domain"

// Apply adds a reward delta to a profile's progression state.
// XP and gold are floored at zero and the level is recomputed from total XP,
// so applying the same delta to the same state always yields the same outcome.
func Apply(prev domain.ProgressionState, delta domain.ProgressionDelta) domain.ProgressionOutcome {
	oldLevel := prev.Level
	if oldLevel < 1 {
		oldLevel = LevelForXP(prev.XP)
	}

	newXP := max(0, prev.XP+delta.XP)
	newGold := max(0, prev.Gold+delta.Gold)
	newLevel := LevelForXP(newXP)

	return domain.ProgressionOutcome{
		XP:        newXP,
		Level:     newLevel,
		Gold:      newGold,
		LeveledUp: newLevel > oldLevel,
		NewLevel:  newLevel,
		OldLevel:  oldLevel,
	}
}
