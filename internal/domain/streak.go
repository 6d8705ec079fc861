package domain

import "time"

// StreakStatus is the evaluator's verdict for a claim
type StreakStatus string

const (
	StreakStatusNone   StreakStatus = "no_streak"
	StreakStatusActive StreakStatus = "active"
	StreakStatusBroken StreakStatus = "broken"
	StreakStatusFrozen StreakStatus = "frozen"
	// StreakStatusSafe is reported when the store could not be read
	StreakStatusSafe StreakStatus = "safe"
)

// Streak tuning
const (
	StreakFreezeCost = 50
	MaxFreezeCount   = 10
)

// StreakState is the persisted streak slice of a profile
type StreakState struct {
	CurrentStreak   int        `json:"current_streak"`
	LongestStreak   int        `json:"longest_streak"`
	FreezeCount     int        `json:"freeze_count"`
	LastDailyReward *time.Time `json:"last_daily_reward,omitempty"`
	StreakUpdatedAt *time.Time `json:"streak_updated_at,omitempty"`
}

// StreakEvaluation is the result of evaluating a claim at a point in time
type StreakEvaluation struct {
	CanClaimToday    bool         `json:"can_claim_today"`
	Status           StreakStatus `json:"status"`
	StreakCount      int          `json:"streak_count"`
	LongestStreak    int          `json:"longest_streak"`
	FreezeUsed       bool         `json:"freeze_used"`
	FreezesRemaining int          `json:"freezes_remaining"`
}

// StreakReward is the tiered reward for reaching a streak day
type StreakReward struct {
	Day   int    `json:"day"`
	XP    int    `json:"xp"`
	Title string `json:"title"`
}

// DailyClaim is the outcome of a daily reward claim
type DailyClaim struct {
	Evaluation  StreakEvaluation   `json:"evaluation"`
	Reward      StreakReward       `json:"reward"`
	Progression ProgressionOutcome `json:"progression"`
	ClaimedAt   time.Time          `json:"claimed_at"`
}

// FreezePurchase is the outcome of buying a streak freeze
type FreezePurchase struct {
	XP          int `json:"xp"`
	FreezeCount int `json:"freeze_count"`
	Cost        int `json:"cost"`
}
