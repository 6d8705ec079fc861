package sse

import (
	"context"
	"log/slog"

	"github.com/habitquest/habitquest-go/internal/event"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a new Subscriber
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// StreamedTypes lists the bus events pushed to live clients
func StreamedTypes() []event.Type {
	return []event.Type{
		event.QuestCompleted,
		event.LevelUp,
		event.LuckyProc,
		event.StreakClaimed,
		event.StreakFrozen,
		event.FounderClaimed,
	}
}

// Subscribe registers the forwarder on every streamed type
func (s *Subscriber) Subscribe(bus event.Bus) {
	types := StreamedTypes()
	for _, t := range types {
		bus.Subscribe(t, s.forward)
	}
	slog.Info(LogMsgSubscriberWired, "types", types)
}

func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.UserID(), evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", evt.UserID())
	return nil
}
