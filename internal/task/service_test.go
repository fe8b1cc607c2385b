package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questkeeper-app/questkeeper/internal/character"
	"github.com/questkeeper-app/questkeeper/internal/concurrency"
	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/gateway"
	"github.com/questkeeper-app/questkeeper/internal/progression"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *eventRecorder) record(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) byType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, evt := range r.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// newTestService wires a task service over the in-memory store. The engine
// is pinned to a never-drop roll; tests that need loot swap it out.
func newTestService(t *testing.T) (*service, gateway.Store, *eventRecorder) {
	t.Helper()

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, 3, 10*time.Millisecond, t.TempDir()+"/deadletter.jsonl")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = publisher.Shutdown(context.Background())
	})

	store := gateway.NewMemoryStore(bus, publisher)
	characterSvc := character.NewService(store, publisher)

	recorder := &eventRecorder{}
	for _, eventType := range []event.Type{
		event.TaskCreated, event.TaskCompleted, event.TaskDeleted,
		event.CharacterUpdated, event.LeveledUp, event.ItemDropped,
	} {
		bus.Subscribe(eventType, recorder.record)
	}

	svc := NewService(store, characterSvc, concurrency.NewLockManager(), publisher).(*service)
	svc.engine = progression.NewEngineWithRand(func() float64 { return 0.99 })
	return svc, store, recorder
}

func createTask(t *testing.T, svc Service, userID string, difficulty domain.Difficulty, questType domain.QuestType) *domain.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), userID, CreateInput{
		Name:       "test task",
		Difficulty: difficulty,
		Type:       questType,
	})
	require.NoError(t, err)
	return task
}

func TestCreate_StoresActiveTask(t *testing.T) {
	svc, _, recorder := newTestService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, "user-1", CreateInput{
		Name:       "  write the report  ",
		Difficulty: domain.DifficultyMedium,
		Type:       domain.QuestTypeMental,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "user-1", task.UserID)
	assert.Equal(t, "write the report", task.Name)
	assert.Equal(t, domain.DifficultyMedium, task.Difficulty)
	assert.Equal(t, domain.QuestTypeMental, task.Type)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())

	tasks, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	assert.Len(t, recorder.byType(event.TaskCreated), 1)
}

func TestCreate_RequiresName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", CreateInput{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, "user-1", CreateInput{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplete_EasyPhysicalOnFreshCharacter(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	task := createTask(t, svc, "user-1", domain.DifficultyEasy, domain.QuestTypePhysical)

	result, err := svc.Complete(ctx, "user-1", task.ID)
	require.NoError(t, err)

	c := result.Character
	assert.Equal(t, 13, c.Strength)
	assert.Equal(t, 101, c.Health)
	assert.Equal(t, 10, c.Intelligence)
	assert.Equal(t, 10, c.Gold)
	assert.Equal(t, 20, c.Experience)
	assert.Equal(t, 1, c.Level)
	assert.False(t, result.LeveledUp)
	assert.Empty(t, result.DroppedItem)
	assert.Equal(t, domain.Reward{StatPoints: 3, Gold: 10, Experience: 20}, result.Reward)

	// The snapshot is persisted, not just returned
	stored, err := store.LoadCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, c.Strength, stored.Strength)
	assert.Equal(t, c.Experience, stored.Experience)

	// Completed tasks leave the active view
	tasks, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestComplete_LevelUpAtThreshold(t *testing.T) {
	svc, store, recorder := newTestService(t)
	ctx := context.Background()

	c := domain.NewCharacter("user-1")
	c.Experience = 95
	require.NoError(t, store.SaveCharacter(ctx, "user-1", c))

	task := createTask(t, svc, "user-1", domain.DifficultyEasy, domain.QuestTypePhysical)

	result, err := svc.Complete(ctx, "user-1", task.ID)
	require.NoError(t, err)

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 2, result.Character.Level)
	assert.Equal(t, 15, result.Character.Experience)
	assert.Equal(t, 106, result.Character.Health)
	assert.Equal(t, 15, result.Character.Intelligence)
	assert.Equal(t, 18, result.Character.Strength)

	levelUps := recorder.byType(event.LeveledUp)
	require.Len(t, levelUps, 1)
	payload, err := event.DecodePayload[event.LeveledUpPayloadV1](levelUps[0])
	require.NoError(t, err)
	assert.Equal(t, 1, payload.OldLevel)
	assert.Equal(t, 2, payload.NewLevel)
}

func TestComplete_HardProductionDoublesGold(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	task := createTask(t, svc, "user-1", domain.DifficultyHard, domain.QuestTypeProduction)

	result, err := svc.Complete(ctx, "user-1", task.ID)
	require.NoError(t, err)

	// Production pays the gold reward twice
	assert.Equal(t, 200, result.Character.Gold)
	assert.Equal(t, 22, result.Character.Intelligence)
	assert.Equal(t, 22, result.Character.Strength)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 0, result.Character.Experience)
}

func TestComplete_UnknownDifficultyEarnsNothing(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	task := createTask(t, svc, "user-1", domain.Difficulty("legendary"), domain.QuestTypeGeneral)

	result, err := svc.Complete(ctx, "user-1", task.ID)
	require.NoError(t, err)

	assert.True(t, result.Reward.IsZero())
	assert.False(t, result.LeveledUp)

	stored, err := store.LoadCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHealth, stored.Health)
	assert.Equal(t, domain.DefaultGold, stored.Gold)
	assert.Equal(t, domain.DefaultExperience, stored.Experience)

	// The task is still retired
	tasks, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestComplete_LootDropAppendsToInventory(t *testing.T) {
	svc, store, recorder := newTestService(t)
	ctx := context.Background()

	rolls := []float64{0.05, 0.419}
	svc.engine = progression.NewEngineWithRand(func() float64 {
		r := rolls[0]
		rolls = rolls[1:]
		return r
	})

	task := createTask(t, svc, "user-1", domain.DifficultyEasy, domain.QuestTypeGeneral)

	result, err := svc.Complete(ctx, "user-1", task.ID)
	require.NoError(t, err)

	assert.Equal(t, "Item #42", result.DroppedItem)
	assert.Equal(t, []string{"Item #42"}, result.Character.Inventory)

	stored, err := store.LoadCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Item #42"}, stored.Inventory)

	drops := recorder.byType(event.ItemDropped)
	require.Len(t, drops, 1)
	payload, err := event.DecodePayload[event.ItemDroppedPayloadV1](drops[0])
	require.NoError(t, err)
	assert.Equal(t, "Item #42", payload.Label)
	assert.Equal(t, "user-1", drops[0].UserID())
}

func TestComplete_TaskErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Complete(ctx, "user-1", "no-such-task")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	task := createTask(t, svc, "user-1", domain.DifficultyEasy, domain.QuestTypeGeneral)

	// Another user cannot complete it
	_, err = svc.Complete(ctx, "user-2", task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = svc.Complete(ctx, "user-1", task.ID)
	require.NoError(t, err)

	_, err = svc.Complete(ctx, "user-1", task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskAlreadyCompleted)
}

func TestComplete_PublishesTaskCompleted(t *testing.T) {
	svc, _, recorder := newTestService(t)
	ctx := context.Background()

	task := createTask(t, svc, "user-1", domain.DifficultyMedium, domain.QuestTypeProduction)

	result, err := svc.Complete(ctx, "user-1", task.ID)
	require.NoError(t, err)

	completed := recorder.byType(event.TaskCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, "user-1", completed[0].UserID())

	payload, err := event.DecodePayload[event.TaskCompletedPayloadV1](completed[0])
	require.NoError(t, err)
	assert.Equal(t, task.ID, payload.TaskID)
	assert.Equal(t, string(domain.DifficultyMedium), payload.Difficulty)
	assert.Equal(t, domain.Reward{StatPoints: 7, Gold: 25, Experience: 50}, payload.Reward)
	assert.Equal(t, result.LeveledUp, payload.LeveledUp)

	// No level, no drop, no extra events
	assert.Empty(t, recorder.byType(event.LeveledUp))
	assert.Empty(t, recorder.byType(event.ItemDropped))
}

func TestComplete_SerializedPerUser(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	const n = 20
	taskIDs := make([]string, n)
	for i := 0; i < n; i++ {
		task := createTask(t, svc, "user-1", domain.DifficultyEasy, domain.QuestTypeGeneral)
		taskIDs[i] = task.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Complete(ctx, "user-1", taskIDs[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "completion %d", i)
	}

	// Serialized completions are fully deterministic: 20 easy/general tasks
	// from a fresh character land on level 3 with 100 spare experience.
	c, err := store.LoadCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, c.Level)
	assert.Equal(t, 100, c.Experience)
	assert.Equal(t, 200, c.Gold)
	assert.Equal(t, 170, c.Health)
	assert.Equal(t, 80, c.Intelligence)
	assert.Equal(t, 80, c.Strength)

	tasks, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDelete_RemovesWithoutRewards(t *testing.T) {
	svc, store, recorder := newTestService(t)
	ctx := context.Background()

	task := createTask(t, svc, "user-1", domain.DifficultyHard, domain.QuestTypeProduction)

	require.NoError(t, svc.Delete(ctx, "user-1", task.ID))

	tasks, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// Deleting never touches the character
	_, err = store.LoadCharacter(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

	assert.Len(t, recorder.byType(event.TaskDeleted), 1)

	err = svc.Delete(ctx, "user-1", task.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
