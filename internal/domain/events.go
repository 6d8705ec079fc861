package domain

// Event type constants used for event bus subscriptions and metrics.
//
// Event types follow the pattern: <entity>.<action>
const (
	// EventTypeQuestCompleted is published after a quest reward is persisted
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeLevelUp is published when a reward crosses a level threshold
	EventTypeLevelUp = "progression.level_up"

	// EventTypeLuckyProc is published when the lucky doubler fires
	EventTypeLuckyProc = "reward.lucky_proc"

	// EventTypeStreakClaimed is published after a daily claim
	EventTypeStreakClaimed = "streak.claimed"

	// EventTypeStreakFrozen is published when a claim consumed a freeze
	EventTypeStreakFrozen = "streak.frozen"

	// EventTypeFreezePurchased is published when a streak freeze is bought with xp
	EventTypeFreezePurchased = "streak.freeze_purchased"

	// EventTypeGoldChanged is published after a spend or grant hits the ledger
	EventTypeGoldChanged = "gold.changed"

	// EventTypeFounderClaimed is published when a founder purchase is confirmed
	EventTypeFounderClaimed = "founder.claimed"

	// EventTypeGoldPurchased is published when a gold purchase is credited
	EventTypeGoldPurchased = "gold.purchased"

	// EventTypeReservationsExpired is published by the reservation sweep
	EventTypeReservationsExpired = "founder.reservations_expired"
)
