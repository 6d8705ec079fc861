package domain

import "time"

// Profile is a user's progression record
type Profile struct {
	UserID            string     `json:"user_id"`
	DisplayName       string     `json:"display_name"`
	XP                int        `json:"xp"`
	Level             int        `json:"level"`
	Gold              int        `json:"gold"`
	CurrentStreak     int        `json:"current_streak"`
	LongestStreak     int        `json:"longest_streak"`
	StreakFreezeCount int        `json:"streak_freeze_count"`
	IsFounder         bool       `json:"is_founder"`
	UnlockedSkills    []string   `json:"unlocked_skills"`
	LastDailyReward   *time.Time `json:"last_daily_reward,omitempty"`
	StreakUpdatedAt   *time.Time `json:"streak_updated_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Progression returns the xp/level/gold slice of the profile
func (p *Profile) Progression() ProgressionState {
	return ProgressionState{XP: p.XP, Level: p.Level, Gold: p.Gold}
}

// Streak returns the streak slice of the profile
func (p *Profile) Streak() StreakState {
	return StreakState{
		CurrentStreak:   p.CurrentStreak,
		LongestStreak:   p.LongestStreak,
		FreezeCount:     p.StreakFreezeCount,
		LastDailyReward: p.LastDailyReward,
		StreakUpdatedAt: p.StreakUpdatedAt,
	}
}

// GoldTransaction is one row of the gold ledger
type GoldTransaction struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	Amount       int       `json:"amount"`
	Reason       string    `json:"reason"`
	Reference    string    `json:"reference,omitempty"`
	BalanceAfter int       `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// Gold transaction reasons
const (
	GoldReasonQuest    = "quest_reward"
	GoldReasonPurchase = "purchase"
	GoldReasonSpend    = "spend"
	GoldReasonGrant    = "grant"
)
