package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// UserID returns the target user carried in the event metadata, or "" when
// the event is not user-addressed. Subscribers use this to route per-user
// streams without decoding the payload.
func (e Event) UserID() string {
	if v, ok := e.GetMetadataValue(domain.MetadataKeyUserID).(string); ok {
		return v
	}
	return ""
}

// Common event types
const (
	TaskCreated      = Type(domain.EventTypeTaskCreated)
	TaskCompleted    = Type(domain.EventTypeTaskCompleted)
	TaskDeleted      = Type(domain.EventTypeTaskDeleted)
	CharacterUpdated = Type(domain.EventTypeCharacterUpdated)
	AvatarChanged    = Type(domain.EventTypeAvatarChanged)
	LeveledUp        = Type(domain.EventTypeLeveledUp)
	ItemDropped      = Type(domain.EventTypeItemDropped)
)

// Typed event payloads for type safety

// TaskCreatedPayloadV1 is the typed payload for task created events
type TaskCreatedPayloadV1 struct {
	UserID     string `json:"user_id"`
	TaskID     string `json:"task_id"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	QuestType  string `json:"quest_type"`
	Timestamp  int64  `json:"timestamp"`
}

// TaskCompletedPayloadV1 is the typed payload for task completed events
type TaskCompletedPayloadV1 struct {
	UserID      string        `json:"user_id"`
	TaskID      string        `json:"task_id"`
	Name        string        `json:"name"`
	Difficulty  string        `json:"difficulty"`
	QuestType   string        `json:"quest_type"`
	Reward      domain.Reward `json:"reward"`
	LeveledUp   bool          `json:"leveled_up"`
	NewLevel    int           `json:"new_level"`
	DroppedItem string        `json:"dropped_item,omitempty"`
	Timestamp   int64         `json:"timestamp"`
}

// TaskDeletedPayloadV1 is the typed payload for task deleted events
type TaskDeletedPayloadV1 struct {
	UserID    string `json:"user_id"`
	TaskID    string `json:"task_id"`
	Timestamp int64  `json:"timestamp"`
}

// CharacterUpdatedPayloadV1 is the typed payload for character update events.
// It carries the full snapshot so subscribers never need a follow-up read.
type CharacterUpdatedPayloadV1 struct {
	UserID    string           `json:"user_id"`
	Character domain.Character `json:"character"`
	Timestamp int64            `json:"timestamp"`
}

// AvatarChangedPayloadV1 is the typed payload for avatar change events
type AvatarChangedPayloadV1 struct {
	UserID    string `json:"user_id"`
	StyleID   string `json:"style_id"`
	Timestamp int64  `json:"timestamp"`
}

// LeveledUpPayloadV1 is the typed payload for level up events
type LeveledUpPayloadV1 struct {
	UserID    string `json:"user_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

// ItemDroppedPayloadV1 is the typed payload for loot drop events
type ItemDroppedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Label     string `json:"label"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewTaskCreatedEvent creates a new task created event
func NewTaskCreatedEvent(task domain.Task) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaskCreated,
		Payload: TaskCreatedPayloadV1{
			UserID:     task.UserID,
			TaskID:     task.ID,
			Name:       task.Name,
			Difficulty: string(task.Difficulty),
			QuestType:  string(task.Type),
			Timestamp:  time.Now().Unix(),
		},
		Metadata: userMetadata(task.UserID),
	}
}

// NewTaskCompletedEvent creates a new task completed event
func NewTaskCompletedEvent(task domain.Task, result domain.CompletionResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaskCompleted,
		Payload: TaskCompletedPayloadV1{
			UserID:      task.UserID,
			TaskID:      task.ID,
			Name:        task.Name,
			Difficulty:  string(task.Difficulty),
			QuestType:   string(task.Type),
			Reward:      result.Reward,
			LeveledUp:   result.LeveledUp,
			NewLevel:    result.NewLevel,
			DroppedItem: result.DroppedItem,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: userMetadata(task.UserID),
	}
}

// NewTaskDeletedEvent creates a new task deleted event
func NewTaskDeletedEvent(userID, taskID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaskDeleted,
		Payload: TaskDeletedPayloadV1{
			UserID:    userID,
			TaskID:    taskID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: userMetadata(userID),
	}
}

// NewCharacterUpdatedEvent creates a new character updated event
func NewCharacterUpdatedEvent(c domain.Character) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CharacterUpdated,
		Payload: CharacterUpdatedPayloadV1{
			UserID:    c.UserID,
			Character: c,
			Timestamp: time.Now().Unix(),
		},
		Metadata: userMetadata(c.UserID),
	}
}

// NewAvatarChangedEvent creates a new avatar changed event
func NewAvatarChangedEvent(userID, styleID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AvatarChanged,
		Payload: AvatarChangedPayloadV1{
			UserID:    userID,
			StyleID:   styleID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: userMetadata(userID),
	}
}

// NewLeveledUpEvent creates a new level up event
func NewLeveledUpEvent(userID string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LeveledUp,
		Payload: LeveledUpPayloadV1{
			UserID:    userID,
			OldLevel:  oldLevel,
			NewLevel:  newLevel,
			Timestamp: time.Now().Unix(),
		},
		Metadata: userMetadata(userID),
	}
}

// NewItemDroppedEvent creates a new loot drop event
func NewItemDroppedEvent(userID, label string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemDropped,
		Payload: ItemDroppedPayloadV1{
			UserID:    userID,
			Label:     label,
			Timestamp: time.Now().Unix(),
		},
		Metadata: userMetadata(userID),
	}
}

func userMetadata(userID string) Metadata {
	return map[string]interface{}{
		domain.MetadataKeyUserID: userID,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
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

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously. With configuration this could dispatch
	// to a worker pool or run in goroutines instead.
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
