package repository

import (
	"context"
	"time"
)

// JournalEntry is one logged bus event, the unit the quest journal serves
type JournalEntry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	UserID    string                 `json:"user_id"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventLog defines the interface for journal persistence
type EventLog interface {
	// Append stores one entry. Payload is marshalled as given.
	Append(ctx context.Context, eventType, userID string, payload map[string]interface{}) error

	// RecentByUser returns the user's newest entries, newest first,
	// at most limit
	RecentByUser(ctx context.Context, userID string, limit int) ([]JournalEntry, error)

	// DeleteOlderThan removes entries older than the retention window and
	// reports how many went
	DeleteOlderThan(ctx context.Context, retentionDays int) (int64, error)
}
