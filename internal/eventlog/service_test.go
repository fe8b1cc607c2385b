package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
)

// failingEventLog rejects every append
type failingEventLog struct {
	MemoryEventLog
}

func (f *failingEventLog) Append(ctx context.Context, eventType, userID string, payload map[string]interface{}) error {
	return errors.New("disk full")
}

func completedTask(userID string) domain.Task {
	return domain.Task{
		ID:         "task-1",
		UserID:     userID,
		Name:       "Water the plants",
		Difficulty: domain.DifficultyEasy,
		Type:       domain.QuestTypeGeneral,
	}
}

func TestService_JournalsUserAddressedEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	repo := NewMemoryEventLog()
	svc := NewService(repo)
	svc.Subscribe(bus)
	ctx := context.Background()

	result := domain.CompletionResult{
		Character: domain.NewCharacter("user-1"),
		Reward:    domain.Reward{StatPoints: 3, Gold: 10, Experience: 20},
		NewLevel:  1,
	}
	require.NoError(t, bus.Publish(ctx, event.NewTaskCompletedEvent(completedTask("user-1"), result)))
	require.NoError(t, bus.Publish(ctx, event.NewLeveledUpEvent("user-1", 1, 2)))
	require.NoError(t, bus.Publish(ctx, event.NewItemDroppedEvent("user-2", "Item #42")))

	entries, err := svc.Recent(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, domain.EventTypeLeveledUp, entries[0].EventType)
	assert.Equal(t, domain.EventTypeTaskCompleted, entries[1].EventType)
	assert.Equal(t, "user-1", entries[1].UserID)
	assert.Equal(t, "task-1", entries[1].Payload["task_id"])

	// user-2's drop never leaks into user-1's journal
	other, err := svc.Recent(ctx, "user-2", 10)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "Item #42", other[0].Payload["label"])
}

func TestService_SkipsEventsWithoutUser(t *testing.T) {
	bus := event.NewMemoryBus()
	repo := NewMemoryEventLog()
	NewService(repo).Subscribe(bus)

	// Hand-built event with no metadata: nothing to key the journal on
	err := bus.Publish(context.Background(), event.Event{
		Version: "1.0",
		Type:    event.TaskCreated,
		Payload: map[string]interface{}{"task_id": "task-9"},
	})
	require.NoError(t, err)

	entries, err := repo.RecentByUser(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_SwallowsRepositoryErrors(t *testing.T) {
	bus := event.NewMemoryBus()
	svc := NewService(&failingEventLog{})
	svc.Subscribe(bus)

	// A journal failure must not fail the publish, or the publisher would
	// replay the event to every subscriber
	err := bus.Publish(context.Background(), event.NewTaskDeletedEvent("user-1", "task-1"))
	assert.NoError(t, err)
}

func TestService_RecentHonorsLimit(t *testing.T) {
	bus := event.NewMemoryBus()
	repo := NewMemoryEventLog()
	svc := NewService(repo)
	svc.Subscribe(bus)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(ctx, event.NewTaskDeletedEvent("user-1", "task-1")))
	}

	entries, err := svc.Recent(ctx, "user-1", 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPayloadToMap_TypedPayload(t *testing.T) {
	m, err := payloadToMap(event.ItemDroppedPayloadV1{
		UserID: "user-1",
		Label:  "Item #7",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", m["user_id"])
	assert.Equal(t, "Item #7", m["label"])
}

func TestPayloadToMap_NilPayload(t *testing.T) {
	m, err := payloadToMap(nil)
	require.NoError(t, err)
	assert.Empty(t, m)
}
