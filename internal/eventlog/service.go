package eventlog

import (
	"context"
	"encoding/json"

	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/logger"
	"github.com/questkeeper-app/questkeeper/internal/repository"
)

// Service is the quest journal: it records every user-addressed bus event
// and serves them back as a per-user history.
type Service interface {
	// Subscribe registers the journal on every event type the bus carries
	Subscribe(bus event.Bus)

	// Recent returns the user's newest entries, newest first
	Recent(ctx context.Context, userID string, limit int) ([]repository.JournalEntry, error)

	// Cleanup removes entries older than the retention period
	Cleanup(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.EventLog
}

// NewService creates a new journal service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(bus event.Bus) {
	eventTypes := []event.Type{
		event.TaskCreated,
		event.TaskCompleted,
		event.TaskDeleted,
		event.CharacterUpdated,
		event.AvatarChanged,
		event.LeveledUp,
		event.ItemDropped,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
}

// handleEvent appends one bus event to the journal. Failures are logged and
// swallowed: a bus error here would make the publisher re-deliver the event
// to every subscriber, and the journal is not worth replayed SSE messages.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	userID := evt.UserID()
	if userID == "" {
		log.Debug(LogMsgEventNotUserAddressed, "type", evt.Type)
		return nil
	}

	payload, err := payloadToMap(evt.Payload)
	if err != nil {
		log.Error(LogMsgFailedToAppendEntry, "error", err, "type", evt.Type)
		return nil
	}

	if err := s.repo.Append(ctx, string(evt.Type), userID, payload); err != nil {
		log.Error(LogMsgFailedToAppendEntry, "error", err, "type", evt.Type, "user_id", userID)
		return nil
	}

	log.Debug(LogMsgEntryAppended, "type", evt.Type, "user_id", userID)
	return nil
}

func (s *service) Recent(ctx context.Context, userID string, limit int) ([]repository.JournalEntry, error) {
	return s.repo.RecentByUser(ctx, userID, limit)
}

func (s *service) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, retentionDays)
}

// payloadToMap flattens a typed event payload through JSON, so the journal
// stores the same shape the wire carries
func payloadToMap(payload interface{}) (map[string]interface{}, error) {
	if payload == nil {
		return map[string]interface{}{}, nil
	}
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
