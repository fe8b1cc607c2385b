package domain

// Event type constants used across the application for event bus subscriptions,
// SSE streaming and metrics tracking. These represent domain events that can be
// published and consumed by multiple modules.
//
// Event types follow the pattern: <entity>.<action> (e.g., "task.completed")
const (
	// EventTypeTaskCreated is published when a user creates a task
	EventTypeTaskCreated = "task.created"

	// EventTypeTaskCompleted is published when a task completion is applied
	EventTypeTaskCompleted = "task.completed"

	// EventTypeTaskDeleted is published when an active task is removed
	EventTypeTaskDeleted = "task.deleted"

	// EventTypeCharacterUpdated is published on every character save
	EventTypeCharacterUpdated = "character.updated"

	// EventTypeAvatarChanged is published when a user picks an avatar style
	EventTypeAvatarChanged = "character.avatar_changed"

	// EventTypeLeveledUp is published when a completion crosses a level threshold
	EventTypeLeveledUp = "character.leveled_up"

	// EventTypeItemDropped is published when a completion's loot roll hits
	EventTypeItemDropped = "character.item_dropped"
)

// Event metadata keys
const (
	// MetadataKeyUserID carries the target user on user-addressed events,
	// letting stream subscribers route without decoding payloads
	MetadataKeyUserID = "user_id"
)
