package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCharacter_Defaults(t *testing.T) {
	c := NewCharacter("user-1")

	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, DefaultHealth, c.Health)
	assert.Equal(t, DefaultIntelligence, c.Intelligence)
	assert.Equal(t, DefaultStrength, c.Strength)
	assert.Equal(t, 0, c.Gold)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 0, c.Experience)
	assert.NotNil(t, c.Inventory)
	assert.Empty(t, c.Inventory)
	assert.Equal(t, AvatarStyleDefault, c.AvatarStyle)
}

func TestCharacter_Clone_InventoryIsolation(t *testing.T) {
	orig := NewCharacter("user-1")
	orig.Inventory = []string{"Item #3"}

	clone := orig.Clone()
	clone.Inventory = append(clone.Inventory, "Item #7")
	clone.Gold = 500

	// Original must be untouched
	assert.Equal(t, []string{"Item #3"}, orig.Inventory)
	assert.Equal(t, 0, orig.Gold)
	assert.Len(t, clone.Inventory, 2)
}

func TestAvatarColor_KnownAndFallback(t *testing.T) {
	assert.Equal(t, "#d90429", AvatarColor("crimson"))

	// Unrecognized styles are legal and render with the default swatch
	assert.Equal(t, AvatarColor(AvatarStyleDefault), AvatarColor("neon-zebra"))
	assert.Equal(t, AvatarColor(AvatarStyleDefault), AvatarColor(""))
}

func TestKnownDifficulty(t *testing.T) {
	assert.True(t, KnownDifficulty(DifficultyEasy))
	assert.True(t, KnownDifficulty(DifficultyMedium))
	assert.True(t, KnownDifficulty(DifficultyHard))
	assert.False(t, KnownDifficulty("legendary"))
	assert.False(t, KnownDifficulty(""))
}

func TestKnownQuestType(t *testing.T) {
	assert.True(t, KnownQuestType(QuestTypeGeneral))
	assert.True(t, KnownQuestType(QuestTypePhysical))
	assert.True(t, KnownQuestType(QuestTypeMental))
	assert.True(t, KnownQuestType(QuestTypeProduction))
	assert.False(t, KnownQuestType("social"))
}
