package domain

// QuestCompletedPayload is the payload for quest.completed events
type QuestCompletedPayload struct {
	UserID     string     `json:"user_id"`
	QuestID    string     `json:"quest_id"`
	Difficulty Difficulty `json:"difficulty"`
	BaseXP     int        `json:"base_xp"`
	FinalXP    int        `json:"final_xp"`
	GoldEarned int        `json:"gold_earned"`
	Timestamp  int64      `json:"timestamp"`
}

// LevelUpPayload is the payload for progression.level_up events
type LevelUpPayload struct {
	UserID    string `json:"user_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

// LuckyProcPayload is the payload for reward.lucky_proc events
type LuckyProcPayload struct {
	UserID      string `json:"user_id"`
	Preliminary int    `json:"preliminary"`
	FinalXP     int    `json:"final_xp"`
	Timestamp   int64  `json:"timestamp"`
}

// StreakClaimedPayload is the payload for streak.claimed and streak.frozen events
type StreakClaimedPayload struct {
	UserID      string       `json:"user_id"`
	Status      StreakStatus `json:"status"`
	StreakCount int          `json:"streak_count"`
	RewardXP    int          `json:"reward_xp"`
	FreezeUsed  bool         `json:"freeze_used"`
	Timestamp   int64        `json:"timestamp"`
}

// FreezePurchasedPayload is the payload for streak.freeze_purchased events
type FreezePurchasedPayload struct {
	UserID      string `json:"user_id"`
	FreezeCount int    `json:"freeze_count"`
	Cost        int    `json:"cost"`
	XPLeft      int    `json:"xp_left"`
	Timestamp   int64  `json:"timestamp"`
}

// GoldChangedPayload is the payload for gold.changed events
type GoldChangedPayload struct {
	UserID     string `json:"user_id"`
	Amount     int    `json:"amount"`
	Reason     string `json:"reason"`
	NewBalance int    `json:"new_balance"`
	Timestamp  int64  `json:"timestamp"`
}

// FounderClaimedPayload is the payload for founder.claimed events
type FounderClaimedPayload struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	ReservationID string `json:"reservation_id,omitempty"`
	Remaining     int    `json:"remaining"`
	Timestamp     int64  `json:"timestamp"`
}

// GoldPurchasedPayload is the payload for gold.purchased events
type GoldPurchasedPayload struct {
	UserID     string `json:"user_id"`
	GoldAmount int    `json:"gold_amount"`
	NewBalance int    `json:"new_balance"`
	Timestamp  int64  `json:"timestamp"`
}

// ReservationsExpiredPayload is the payload for founder.reservations_expired events
type ReservationsExpiredPayload struct {
	Expired   int64 `json:"expired"`
	Timestamp int64 `json:"timestamp"`
}
