package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Get retrieves the character record for a user
func (r *CharacterRepository) Get(ctx context.Context, userID string) (*domain.Character, error) {
	query := `
		SELECT user_id, health, intelligence, strength, gold, level, experience,
		       inventory, avatar_style, created_at, updated_at
		FROM characters
		WHERE user_id = $1
	`

	var c domain.Character
	var inventoryJSON []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&c.UserID,
		&c.Health,
		&c.Intelligence,
		&c.Strength,
		&c.Gold,
		&c.Level,
		&c.Experience,
		&inventoryJSON,
		&c.AvatarStyle,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, domain.ErrCharacterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}

	if len(inventoryJSON) > 0 {
		if err := json.Unmarshal(inventoryJSON, &c.Inventory); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalInventory, err)
		}
	}
	if c.Inventory == nil {
		c.Inventory = []string{}
	}

	return &c, nil
}

// Upsert inserts or fully replaces the character record for a user
func (r *CharacterRepository) Upsert(ctx context.Context, userID string, character domain.Character) error {
	inventoryJSON, err := json.Marshal(character.Inventory)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalInventory, err)
	}

	query := `
		INSERT INTO characters (
			user_id, health, intelligence, strength, gold, level, experience,
			inventory, avatar_style, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			health = EXCLUDED.health,
			intelligence = EXCLUDED.intelligence,
			strength = EXCLUDED.strength,
			gold = EXCLUDED.gold,
			level = EXCLUDED.level,
			experience = EXCLUDED.experience,
			inventory = EXCLUDED.inventory,
			avatar_style = EXCLUDED.avatar_style,
			updated_at = NOW()
	`

	_, err = r.db.Exec(ctx, query,
		userID,
		character.Health,
		character.Intelligence,
		character.Strength,
		character.Gold,
		character.Level,
		character.Experience,
		inventoryJSON,
		character.AvatarStyle,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertCharacter, err)
	}

	return nil
}
