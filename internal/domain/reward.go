package domain

// XPBonus is the skill multiplier stack applied to a base reward
type XPBonus struct {
	Multiplier float64 `json:"multiplier"`
	BonusXP    int     `json:"bonus_xp"`
	TotalXP    int     `json:"total_xp"`
}

// RewardResult is computed fresh for every completion and never stored
type RewardResult struct {
	BaseXP        int      `json:"base_xp"`
	SkillBonusXP  int      `json:"skill_bonus_xp"`
	StreakBonusXP int      `json:"streak_bonus_xp"`
	MultitaskerXP int      `json:"multitasker_xp"`
	LuckyProc     bool     `json:"lucky_proc"`
	DoubleFriday  bool     `json:"double_friday"`
	Multiplier    float64  `json:"multiplier"`
	FinalXP       int      `json:"final_xp"`
	Breakdown     []string `json:"breakdown"`
}

// ProgressionState is the slice of a profile the progression applier reads
type ProgressionState struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
	Gold  int `json:"gold"`
}

// ProgressionDelta is a reward to apply
type ProgressionDelta struct {
	XP   int `json:"xp"`
	Gold int `json:"gold"`
}

// ProgressionOutcome is the new profile state after a delta
type ProgressionOutcome struct {
	XP        int  `json:"xp"`
	Level     int  `json:"level"`
	Gold      int  `json:"gold"`
	LeveledUp bool `json:"leveled_up"`
	NewLevel  int  `json:"new_level"`
	OldLevel  int  `json:"old_level"`
}
