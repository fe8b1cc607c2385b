package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questkeeper-app/questkeeper/internal/repository"
)

// EventLogRepository implements the journal repository for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// Append stores one journal entry
func (r *EventLogRepository) Append(ctx context.Context, eventType, userID string, payload map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPayload, err)
	}

	query := `
		INSERT INTO events (event_type, user_id, payload, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := r.db.Exec(ctx, query, eventType, userID, payloadJSON); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAppendEvent, err)
	}

	return nil
}

// RecentByUser returns the user's newest entries, newest first
func (r *EventLogRepository) RecentByUser(ctx context.Context, userID string, limit int) ([]repository.JournalEntry, error) {
	query := `
		SELECT id, event_type, user_id, payload, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListEvents, err)
	}
	defer rows.Close()

	entries := []repository.JournalEntry{}
	for rows.Next() {
		var entry repository.JournalEntry
		var payloadJSON []byte

		if err := rows.Scan(&entry.ID, &entry.EventType, &entry.UserID, &payloadJSON, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanEvent, err)
		}
		if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalPayload, err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteOlderThan removes entries past the retention window
func (r *EventLogRepository) DeleteOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	query := `
		DELETE FROM events
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`

	result, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}

	return result.RowsAffected(), nil
}
