// Package eventlog persists bus events so players can page through their
// recent activity.
package eventlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/event"
	"github.com/habitquest/habitquest-go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the logger on every user-scoped event and the
	// reservation sweep
	Subscribe(bus event.Bus)

	// Recent returns a user's latest activity, newest first
	Recent(ctx context.Context, userID string, limit int) ([]Entry, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// LoggedTypes lists the event types written to the log
func LoggedTypes() []event.Type {
	types := make([]event.Type, 0, len(event.UserTypes)+1)
	types = append(types, event.UserTypes...)
	return append(types, event.ReservationsExpired)
}

func (s *service) Subscribe(bus event.Bus) {
	for _, t := range LoggedTypes() {
		bus.Subscribe(t, s.handleEvent)
	}
}

// handleEvent never fails the publish: a bus retry would redeliver the event
// to every other subscriber.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := toObject(evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventPayloadNotObject, "type", evt.Type, "error", err)
		return nil
	}

	var userID *string
	if id := evt.UserID(); id != "" {
		userID = &id
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload, evt.Metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", evt.UserID())
	return nil
}

func (s *service) Recent(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if userID == "" {
		return nil, domain.NewValidationFailure(domain.ErrInvalidInput, ErrMsgUserIDRequired)
	}
	entries, err := s.repo.GetEventsByUser(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewStoreUnavailable(err, ErrMsgQueryFailed)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 1 {
		return 0, fmt.Errorf("%s: %d", ErrMsgInvalidRetention, retentionDays)
	}
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}

// toObject normalizes typed and decoded payloads to a JSON object
func toObject(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
