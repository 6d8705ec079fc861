package metrics

import (
	"context"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/logger"
)

// Sources used for the xp and level-up labels
const (
	SourceQuest  = "quest"
	SourceStreak = "streak"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := append([]event.Type{event.ReservationsExpired}, event.UserTypes...)
	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.QuestCompleted:
		var p domain.QuestCompletedPayload
		if p, err = event.DecodePayload[domain.QuestCompletedPayload](evt.Payload); err == nil {
			QuestsCompleted.WithLabelValues(string(p.Difficulty)).Inc()
			XPAwarded.WithLabelValues(SourceQuest).Add(float64(p.FinalXP))
			GoldEarned.Add(float64(p.GoldEarned))
		}

	case event.LevelUp:
		var p domain.LevelUpPayload
		if p, err = event.DecodePayload[domain.LevelUpPayload](evt.Payload); err == nil {
			LevelUps.WithLabelValues(p.Source).Add(float64(p.NewLevel - p.OldLevel))
		}

	case event.LuckyProc:
		LuckyProcs.Inc()

	case event.StreakClaimed, event.StreakFrozen:
		var p domain.StreakClaimedPayload
		if p, err = event.DecodePayload[domain.StreakClaimedPayload](evt.Payload); err == nil {
			StreakClaims.WithLabelValues(string(p.Status)).Inc()
			XPAwarded.WithLabelValues(SourceStreak).Add(float64(p.RewardXP))
		}

	case event.FreezePurchased:
		FreezesPurchased.Inc()

	case event.GoldChanged:
		var p domain.GoldChangedPayload
		if p, err = event.DecodePayload[domain.GoldChangedPayload](evt.Payload); err == nil {
			if p.Amount >= 0 {
				GoldEarned.Add(float64(p.Amount))
			} else {
				GoldSpent.Add(float64(-p.Amount))
			}
		}

	case event.GoldPurchased:
		var p domain.GoldPurchasedPayload
		if p, err = event.DecodePayload[domain.GoldPurchasedPayload](evt.Payload); err == nil {
			GoldPurchased.Add(float64(p.GoldAmount))
		}

	case event.FounderClaimed:
		var p domain.FounderClaimedPayload
		if p, err = event.DecodePayload[domain.FounderClaimedPayload](evt.Payload); err == nil {
			FounderClaims.Inc()
			FounderSlotsRemaining.Set(float64(p.Remaining))
		}

	case event.ReservationsExpired:
		var p domain.ReservationsExpiredPayload
		if p, err = event.DecodePayload[domain.ReservationsExpiredPayload](evt.Payload); err == nil {
			ReservationsExpired.Add(float64(p.Expired))
		}
	}

	if err != nil {
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
