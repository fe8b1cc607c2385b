package sse

import (
	"context"
	"log/slog"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub. Every relayed
// event is addressed to the user in its metadata; events without one are
// dropped rather than shown to everyone.
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for all relayed event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.TaskCreated, forwardTo[event.TaskCreatedPayloadV1](s.hub))
	s.bus.Subscribe(event.TaskCompleted, forwardTo[event.TaskCompletedPayloadV1](s.hub))
	s.bus.Subscribe(event.TaskDeleted, forwardTo[event.TaskDeletedPayloadV1](s.hub))
	s.bus.Subscribe(event.CharacterUpdated, s.handleCharacterUpdated)
	s.bus.Subscribe(event.AvatarChanged, forwardTo[event.AvatarChangedPayloadV1](s.hub))
	s.bus.Subscribe(event.LeveledUp, forwardTo[event.LeveledUpPayloadV1](s.hub))
	s.bus.Subscribe(event.ItemDropped, forwardTo[event.ItemDroppedPayloadV1](s.hub))

	slog.Info(LogMsgSubscriberRegistered,
		"types", []string{
			string(event.TaskCreated),
			string(event.TaskCompleted),
			string(event.TaskDeleted),
			string(event.CharacterUpdated),
			string(event.AvatarChanged),
			string(event.LeveledUp),
			string(event.ItemDropped),
		})
}

// handleCharacterUpdated wraps the snapshot with its resolved avatar color
// before relaying
func (s *Subscriber) handleCharacterUpdated(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.CharacterUpdatedPayloadV1](evt)
	if err != nil {
		log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
		return nil
	}
	if payload.UserID == "" {
		log.Warn(LogMsgMissingTargetUser, "type", evt.Type)
		return nil
	}

	s.hub.Broadcast(payload.UserID, string(evt.Type), CharacterPayload{
		Character:   payload.Character,
		AvatarColor: domain.AvatarColor(payload.Character.AvatarStyle),
	})

	log.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", payload.UserID)
	return nil
}

// forwardTo returns a bus handler that decodes the typed payload and relays
// it unchanged to the stream of the user the event is addressed to
func forwardTo[T any](hub *Hub) event.Handler {
	return func(ctx context.Context, evt event.Event) error {
		log := logger.FromContext(ctx)

		payload, err := event.DecodePayload[T](evt)
		if err != nil {
			log.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
			return nil
		}

		userID := evt.UserID()
		if userID == "" {
			log.Warn(LogMsgMissingTargetUser, "type", evt.Type)
			return nil
		}

		hub.Broadcast(userID, string(evt.Type), payload)
		log.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", userID)
		return nil
	}
}
