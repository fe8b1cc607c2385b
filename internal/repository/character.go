package repository

import (
	"context"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// Character defines the interface for character persistence
type Character interface {
	// Get returns the character for userID, or domain.ErrCharacterNotFound
	// when no record exists
	Get(ctx context.Context, userID string) (*domain.Character, error)

	// Upsert writes the full character record for userID, creating it on
	// first save. The stored UserID always matches the userID argument.
	Upsert(ctx context.Context, userID string, character domain.Character) error
}
