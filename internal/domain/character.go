package domain

import "time"

// Character creation defaults, applied the first time a user is seen.
// A character record is never deleted once created.
const (
	DefaultHealth       = 100
	DefaultIntelligence = 10
	DefaultStrength     = 10
	DefaultGold         = 0
	DefaultLevel        = 1
	DefaultExperience   = 0
)

// Character is the persistent game state for a single user: core attributes,
// currency, progression counters, and the item inventory. Attributes, gold,
// level and inventory only ever grow; experience resets on level-up.
type Character struct {
	UserID       string    `json:"user_id"`
	Health       int       `json:"health"`
	Intelligence int       `json:"intelligence"`
	Strength     int       `json:"strength"`
	Gold         int       `json:"gold"`
	Level        int       `json:"level"`
	Experience   int       `json:"experience"`
	Inventory    []string  `json:"inventory"`
	AvatarStyle  string    `json:"avatar_style"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCharacter returns a fresh character with creation defaults for the user
func NewCharacter(userID string) Character {
	return Character{
		UserID:       userID,
		Health:       DefaultHealth,
		Intelligence: DefaultIntelligence,
		Strength:     DefaultStrength,
		Gold:         DefaultGold,
		Level:        DefaultLevel,
		Experience:   DefaultExperience,
		Inventory:    []string{},
		AvatarStyle:  AvatarStyleDefault,
	}
}

// Clone returns a deep copy of the character. Inventory is copied so callers
// can append without aliasing the original slice.
func (c Character) Clone() Character {
	out := c
	out.Inventory = make([]string, len(c.Inventory))
	copy(out.Inventory, c.Inventory)
	return out
}

// DerivedStats are the combat-facing numbers computed from a character's
// attributes and level. They are never stored; recompute on demand.
// Values are fractional internally, display layers round.
type DerivedStats struct {
	MaxHealth float64 `json:"max_health"`
	MaxMana   float64 `json:"max_mana"`
	Attack    float64 `json:"attack"`
	Defense   float64 `json:"defense"`
}
