package character

import (
	"context"
	"errors"
	"fmt"

	"github.com/questkeeper-app/questkeeper/internal/domain"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/gateway"
	"github.com/questkeeper-app/questkeeper/internal/logger"
	"github.com/questkeeper-app/questkeeper/internal/progression"
)

// Service defines the character business logic
type Service interface {
	// GetOrCreate returns the user's character, creating the default record
	// the first time the user is seen. It never reports an absent character.
	GetOrCreate(ctx context.Context, userID string) (*domain.Character, error)

	// DerivedStats computes the combat-facing stats for the user's character
	DerivedStats(ctx context.Context, userID string) (domain.DerivedStats, error)

	// ChangeAvatar stores the given style on the character. Styles outside
	// the catalog are stored as given; display layers fall back to the
	// default swatch.
	ChangeAvatar(ctx context.Context, userID, styleID string) (*domain.Character, error)

	// AvatarStyles returns the selectable style catalog
	AvatarStyles() []domain.AvatarStyleOption

	// Watch streams character snapshots for the user: the current one on
	// attach, then one per change. Creates the character first so the stream
	// always opens with a snapshot.
	Watch(ctx context.Context, userID string) (<-chan domain.Character, func(), error)

	// Lifecycle
	Shutdown(ctx context.Context) error
}

type service struct {
	store     gateway.Store
	publisher *event.ResilientPublisher
}

// NewService creates a new character service
func NewService(store gateway.Store, publisher *event.ResilientPublisher) Service {
	return &service{
		store:     store,
		publisher: publisher,
	}
}

func (s *service) GetOrCreate(ctx context.Context, userID string) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	c, err := s.store.LoadCharacter(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrCharacterNotFound) {
		log.Error("Failed to load character", "error", err, "user_id", userID)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadCharacter, err)
	}

	// First sight of this user. Concurrent first sights both write the same
	// defaults, so the upsert race is harmless.
	fresh := domain.NewCharacter(userID)
	if err := s.store.SaveCharacter(ctx, userID, fresh); err != nil {
		log.Error("Failed to create character", "error", err, "user_id", userID)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateCharacter, err)
	}

	log.Info(LogMsgCharacterCreated, "user_id", userID)
	return &fresh, nil
}

func (s *service) DerivedStats(ctx context.Context, userID string) (domain.DerivedStats, error) {
	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.DerivedStats{}, err
	}
	return progression.DeriveStats(*c), nil
}

func (s *service) ChangeAvatar(ctx context.Context, userID, styleID string) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !domain.KnownAvatarStyle(styleID) {
		log.Debug(LogMsgUnknownAvatarStyle, "user_id", userID, "style", styleID)
	}

	updated := progression.ChangeAvatarStyle(*c, styleID)
	if err := s.store.SaveCharacter(ctx, userID, updated); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToChangeAvatar, err)
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewAvatarChangedEvent(userID, styleID))
	}

	log.Info(LogMsgAvatarChanged, "user_id", userID, "style", styleID)
	return &updated, nil
}

func (s *service) AvatarStyles() []domain.AvatarStyleOption {
	return domain.AvatarStyles()
}

func (s *service) Watch(ctx context.Context, userID string) (<-chan domain.Character, func(), error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, nil, err
	}

	ch, cancel := s.store.WatchCharacter(ctx, userID)
	return ch, cancel, nil
}

// Shutdown gracefully shuts down the character service. The shared event
// publisher is bootstrap's to close, after all services.
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServiceShuttingDown)
	return nil
}
