package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty of a quest
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts user input into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", NewValidationFailure(ErrInvalidDifficulty, fmt.Sprintf("unknown difficulty %q", s))
	}
	return d, nil
}

// Quest is one user task with its base reward
type Quest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	XPValue     int        `json:"xp_value"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// QuestCompletion is the outcome of completing a quest
type QuestCompletion struct {
	Quest                Quest              `json:"quest"`
	Reward               RewardResult       `json:"reward"`
	GoldEarned           int                `json:"gold_earned"`
	Progression          ProgressionOutcome `json:"progression"`
	QuestsCompletedToday int                `json:"quests_completed_today"`
}
