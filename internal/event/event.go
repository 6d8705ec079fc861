package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types
const (
	QuestCompleted      Type = domain.EventTypeQuestCompleted
	LevelUp             Type = domain.EventTypeLevelUp
	LuckyProc           Type = domain.EventTypeLuckyProc
	StreakClaimed       Type = domain.EventTypeStreakClaimed
	StreakFrozen        Type = domain.EventTypeStreakFrozen
	FreezePurchased     Type = domain.EventTypeFreezePurchased
	GoldChanged         Type = domain.EventTypeGoldChanged
	FounderClaimed      Type = domain.EventTypeFounderClaimed
	GoldPurchased       Type = domain.EventTypeGoldPurchased
	ReservationsExpired Type = domain.EventTypeReservationsExpired
)

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"`
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Source returns the metadata source tag, if any
func (e Event) Source() string {
	if s, ok := e.Metadata["source"].(string); ok {
		return s
	}
	return ""
}

// UserID returns the user the event is about, or "" for system events
func (e Event) UserID() string {
	switch p := e.Payload.(type) {
	case domain.QuestCompletedPayload:
		return p.UserID
	case domain.LevelUpPayload:
		return p.UserID
	case domain.LuckyProcPayload:
		return p.UserID
	case domain.StreakClaimedPayload:
		return p.UserID
	case domain.FreezePurchasedPayload:
		return p.UserID
	case domain.GoldChangedPayload:
		return p.UserID
	case domain.FounderClaimedPayload:
		return p.UserID
	case domain.GoldPurchasedPayload:
		return p.UserID
	case map[string]interface{}:
		if id, ok := p["user_id"].(string); ok {
			return id
		}
	}
	return ""
}

// UserTypes lists every event type whose payload names a user
var UserTypes = []Type{
	QuestCompleted, LevelUp, LuckyProc, StreakClaimed, StreakFrozen,
	FreezePurchased, GoldChanged, FounderClaimed, GoldPurchased,
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is what services publish through; failures are retried, never returned
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscribed handler synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func newEvent(t Type, payload interface{}, source string) Event {
	e := Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: payload,
	}
	if source != "" {
		e.Metadata = map[string]interface{}{"source": source}
	}
	return e
}

// NewQuestCompletedEvent creates a quest.completed event
func NewQuestCompletedEvent(c *domain.QuestCompletion) Event {
	return newEvent(QuestCompleted, domain.QuestCompletedPayload{
		UserID:     c.Quest.UserID,
		QuestID:    c.Quest.ID,
		Difficulty: c.Quest.Difficulty,
		BaseXP:     c.Reward.BaseXP,
		FinalXP:    c.Reward.FinalXP,
		GoldEarned: c.GoldEarned,
		Timestamp:  time.Now().Unix(),
	}, "")
}

// NewLevelUpEvent creates a progression.level_up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, source string) Event {
	return newEvent(LevelUp, domain.LevelUpPayload{
		UserID:    userID,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		Source:    source,
		Timestamp: time.Now().Unix(),
	}, source)
}

// NewLuckyProcEvent creates a reward.lucky_proc event
func NewLuckyProcEvent(userID string, preliminary, finalXP int) Event {
	return newEvent(LuckyProc, domain.LuckyProcPayload{
		UserID:      userID,
		Preliminary: preliminary,
		FinalXP:     finalXP,
		Timestamp:   time.Now().Unix(),
	}, "")
}

// NewStreakClaimedEvent creates streak.frozen when a freeze was used, streak.claimed otherwise
func NewStreakClaimedEvent(userID string, claim *domain.DailyClaim) Event {
	t := StreakClaimed
	if claim.Evaluation.FreezeUsed {
		t = StreakFrozen
	}
	return newEvent(t, domain.StreakClaimedPayload{
		UserID:      userID,
		Status:      claim.Evaluation.Status,
		StreakCount: claim.Evaluation.StreakCount,
		RewardXP:    claim.Reward.XP,
		FreezeUsed:  claim.Evaluation.FreezeUsed,
		Timestamp:   claim.ClaimedAt.Unix(),
	}, "")
}

// NewFreezePurchasedEvent creates a streak.freeze_purchased event
func NewFreezePurchasedEvent(userID string, p domain.FreezePurchase) Event {
	return newEvent(FreezePurchased, domain.FreezePurchasedPayload{
		UserID:      userID,
		FreezeCount: p.FreezeCount,
		Cost:        p.Cost,
		XPLeft:      p.XP,
		Timestamp:   time.Now().Unix(),
	}, "")
}

// NewGoldChangedEvent creates a gold.changed event from a ledger row
func NewGoldChangedEvent(txn *domain.GoldTransaction) Event {
	return newEvent(GoldChanged, domain.GoldChangedPayload{
		UserID:     txn.UserID,
		Amount:     txn.Amount,
		Reason:     txn.Reason,
		NewBalance: txn.BalanceAfter,
		Timestamp:  txn.CreatedAt.Unix(),
	}, "")
}

// NewFounderClaimedEvent creates a founder.claimed event
func NewFounderClaimedEvent(userID, displayName, reservationID string, remaining int) Event {
	return newEvent(FounderClaimed, domain.FounderClaimedPayload{
		UserID:        userID,
		DisplayName:   displayName,
		ReservationID: reservationID,
		Remaining:     remaining,
		Timestamp:     time.Now().Unix(),
	}, "")
}

// NewGoldPurchasedEvent creates a gold.purchased event
func NewGoldPurchasedEvent(userID string, amount, newBalance int) Event {
	return newEvent(GoldPurchased, domain.GoldPurchasedPayload{
		UserID:     userID,
		GoldAmount: amount,
		NewBalance: newBalance,
		Timestamp:  time.Now().Unix(),
	}, "")
}

// NewReservationsExpiredEvent creates a founder.reservations_expired event
func NewReservationsExpiredEvent(expired int64) Event {
	return newEvent(ReservationsExpired, domain.ReservationsExpiredPayload{
		Expired:   expired,
		Timestamp: time.Now().Unix(),
	}, "")
}
