package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/repository"
)

// MemoryEventLog is a map-backed repository.EventLog for dev mode. Each user
// keeps a bounded slice, oldest entries evicted first.
type MemoryEventLog struct {
	mu      sync.RWMutex
	entries map[string][]repository.JournalEntry
	maxPer  int
	nextID  int64
}

// NewMemoryEventLog creates an empty in-memory journal
func NewMemoryEventLog() *MemoryEventLog {
	return &MemoryEventLog{
		entries: make(map[string][]repository.JournalEntry),
		maxPer:  MemoryEntriesPerUser,
	}
}

func (m *MemoryEventLog) Append(ctx context.Context, eventType, userID string, payload map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	entry := repository.JournalEntry{
		ID:        m.nextID,
		EventType: eventType,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	list := append(m.entries[userID], entry)
	if len(list) > m.maxPer {
		list = list[len(list)-m.maxPer:]
	}
	m.entries[userID] = list

	return nil
}

func (m *MemoryEventLog) RecentByUser(ctx context.Context, userID string, limit int) ([]repository.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.entries[userID]
	if limit > len(list) {
		limit = len(list)
	}

	// Stored oldest first; serve newest first
	out := make([]repository.JournalEntry, 0, limit)
	for i := len(list) - 1; i >= len(list)-limit; i-- {
		out = append(out, list[i])
	}

	return out, nil
}

func (m *MemoryEventLog) DeleteOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	var deleted int64

	for userID, list := range m.entries {
		kept := list[:0]
		for _, entry := range list {
			if entry.CreatedAt.After(cutoff) {
				kept = append(kept, entry)
			} else {
				deleted++
			}
		}
		if len(kept) == 0 {
			delete(m.entries, userID)
		} else {
			m.entries[userID] = kept
		}
	}

	return deleted, nil
}

// Interface conformance check
var _ repository.EventLog = (*MemoryEventLog)(nil)
