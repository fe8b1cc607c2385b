package metrics

import (
	"context"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
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
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	// Record business metrics based on event type
	switch evt.Type {
	case event.TaskCreated:
		payload, err := event.DecodePayload[event.TaskCreatedPayloadV1](evt.Payload)
		if err != nil {
			return e.decodeFailure(ctx, evt, err)
		}
		TasksCreated.WithLabelValues(payload.Difficulty, payload.QuestType).Inc()

	case event.TaskCompleted:
		payload, err := event.DecodePayload[event.TaskCompletedPayloadV1](evt.Payload)
		if err != nil {
			return e.decodeFailure(ctx, evt, err)
		}
		TasksCompleted.WithLabelValues(payload.Difficulty, payload.QuestType).Inc()

		// Production quests bank the reward gold twice
		gold := payload.Reward.Gold
		if payload.QuestType == string(domain.QuestTypeProduction) {
			gold *= 2
		}
		GoldEarned.Add(float64(gold))
		ExperienceEarned.Add(float64(payload.Reward.Experience))

	case event.LeveledUp:
		LevelUps.Inc()

	case event.ItemDropped:
		ItemsDropped.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// decodeFailure records the malformed payload without failing the publish,
// so one bad event cannot push every other subscriber into retry.
func (e *EventMetricsCollector) decodeFailure(ctx context.Context, evt event.Event, err error) error {
	EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
	return nil
}
