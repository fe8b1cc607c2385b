package character

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/gateway"
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

func newTestService(t *testing.T) (Service, gateway.Store, *eventRecorder) {
	t.Helper()

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, 3, 10*time.Millisecond, t.TempDir()+"/deadletter.jsonl")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = publisher.Shutdown(context.Background())
	})

	store := gateway.NewMemoryStore(bus, publisher)

	recorder := &eventRecorder{}
	for _, eventType := range []event.Type{event.CharacterUpdated, event.AvatarChanged} {
		bus.Subscribe(eventType, recorder.record)
	}

	return NewService(store, publisher), store, recorder
}

func TestGetOrCreate_FirstSightCreatesDefaults(t *testing.T) {
	svc, store, recorder := newTestService(t)
	ctx := context.Background()

	c, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, domain.DefaultHealth, c.Health)
	assert.Equal(t, domain.DefaultIntelligence, c.Intelligence)
	assert.Equal(t, domain.DefaultStrength, c.Strength)
	assert.Equal(t, domain.DefaultGold, c.Gold)
	assert.Equal(t, domain.DefaultLevel, c.Level)
	assert.Equal(t, domain.DefaultExperience, c.Experience)
	assert.Equal(t, []string{}, c.Inventory)
	assert.Equal(t, domain.AvatarStyleDefault, c.AvatarStyle)

	// The create is persisted, not just returned
	stored, err := store.LoadCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultHealth, stored.Health)

	assert.Len(t, recorder.byType(event.CharacterUpdated), 1)
}

func TestGetOrCreate_ExistingCharacterUntouched(t *testing.T) {
	svc, store, recorder := newTestService(t)
	ctx := context.Background()

	c := domain.NewCharacter("user-1")
	c.Gold = 210
	c.Level = 3
	require.NoError(t, store.SaveCharacter(ctx, "user-1", c))

	got, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 210, got.Gold)
	assert.Equal(t, 3, got.Level)

	// Only the explicit save published; GetOrCreate read without writing
	assert.Len(t, recorder.byType(event.CharacterUpdated), 1)
}

func TestDerivedStats_FreshCharacter(t *testing.T) {
	svc, _, _ := newTestService(t)

	stats, err := svc.DerivedStats(context.Background(), "user-1")
	require.NoError(t, err)

	assert.InDelta(t, 260.0, stats.MaxHealth, 0.001)
	assert.InDelta(t, 55.0, stats.MaxMana, 0.001)
	assert.InDelta(t, 17.0, stats.Attack, 0.001)
	assert.InDelta(t, 81.0, stats.Defense, 0.001)
}

func TestChangeAvatar_StoresStyleAndPublishes(t *testing.T) {
	svc, store, recorder := newTestService(t)
	ctx := context.Background()

	updated, err := svc.ChangeAvatar(ctx, "user-1", "crimson")
	require.NoError(t, err)
	assert.Equal(t, "crimson", updated.AvatarStyle)

	stored, err := store.LoadCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "crimson", stored.AvatarStyle)

	events := recorder.byType(event.AvatarChanged)
	require.Len(t, events, 1)
	assert.Equal(t, "user-1", events[0].UserID())

	payload, err := event.DecodePayload[event.AvatarChangedPayloadV1](events[0])
	require.NoError(t, err)
	assert.Equal(t, "crimson", payload.StyleID)
}

func TestChangeAvatar_UnknownStyleStoredAsGiven(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	updated, err := svc.ChangeAvatar(ctx, "user-1", "neon-zebra")
	require.NoError(t, err)
	assert.Equal(t, "neon-zebra", updated.AvatarStyle)

	stored, err := store.LoadCharacter(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "neon-zebra", stored.AvatarStyle)

	// Display color falls back to the default swatch
	assert.Equal(t, domain.AvatarColor(domain.AvatarStyleDefault), domain.AvatarColor("neon-zebra"))
}

func TestAvatarStyles_CatalogOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	styles := svc.AvatarStyles()
	require.NotEmpty(t, styles)
	assert.Equal(t, domain.AvatarStyleDefault, styles[0].ID)
	for _, s := range styles {
		assert.NotEmpty(t, s.Color)
	}
}

func TestWatch_OpensWithSnapshotThenStreamsChanges(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	ch, cancel, err := svc.Watch(ctx, "user-1")
	require.NoError(t, err)
	defer cancel()

	first := recvCharacter(t, ch)
	assert.Equal(t, domain.AvatarStyleDefault, first.AvatarStyle)
	assert.Equal(t, domain.DefaultHealth, first.Health)

	_, err = svc.ChangeAvatar(ctx, "user-1", "emerald")
	require.NoError(t, err)

	// The avatar save lands as a fresh snapshot on the stream
	got := recvCharacter(t, ch)
	for got.AvatarStyle != "emerald" {
		got = recvCharacter(t, ch)
	}
	assert.Equal(t, "emerald", got.AvatarStyle)
}

func recvCharacter(t *testing.T, ch <-chan domain.Character) domain.Character {
	t.Helper()
	select {
	case c, ok := <-ch:
		require.True(t, ok, "watch channel closed unexpectedly")
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for character snapshot")
		return domain.Character{}
	}
}
