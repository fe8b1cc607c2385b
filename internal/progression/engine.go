package progression

import (
	"fmt"
	"math/rand"

	"github.com/questkeeper-app/questkeeper/internal/domain"
)

// Engine applies task completions to character snapshots. It is pure apart
// from the injected random source: no persistence, no logging, no shared
// state, so two engines given the same snapshot and rolls agree exactly.
type Engine struct {
	rnd func() float64 // Uniform values in [0.0, 1.0)
}

// defaultRand feeds loot rolls outside tests
func defaultRand() float64 {
	return rand.Float64() //nolint:gosec // Game rolls, not security material
}

// NewEngine creates an engine backed by the default random source
func NewEngine() *Engine {
	return &Engine{rnd: defaultRand}
}

// NewEngineWithRand creates an engine with a custom random source.
// Tests inject deterministic rolls to force both loot branches.
func NewEngineWithRand(rnd func() float64) *Engine {
	return &Engine{rnd: rnd}
}

// ApplyTaskCompletion computes the character state after one task
// completion. The input snapshot is never mutated; the result carries a
// fresh copy with its own inventory slice.
//
// Order matters and is fixed: type allocation, then the unconditional gold
// and experience awards, then a single level check against the threshold of
// the level held before this completion, then the loot roll.
func (e *Engine) ApplyTaskCompletion(c domain.Character, difficulty domain.Difficulty, questType domain.QuestType) domain.CompletionResult {
	out := c.Clone()
	reward := RewardFor(difficulty)

	switch questType {
	case domain.QuestTypePhysical:
		out.Strength += reward.StatPoints
		out.Health += reward.StatPoints / 2
	case domain.QuestTypeMental:
		out.Intelligence += reward.StatPoints
		out.Health += reward.StatPoints / 2
	case domain.QuestTypeProduction:
		out.Intelligence += reward.StatPoints / 2
		out.Strength += reward.StatPoints / 2
		// Production quests earn their gold here AND in the unconditional
		// award below. Doubling is the shipped behavior, keep it.
		out.Gold += reward.Gold
	default:
		// General, and any unrecognized type
		out.Health += reward.StatPoints
		out.Intelligence += reward.StatPoints
		out.Strength += reward.StatPoints
	}

	out.Gold += reward.Gold
	out.Experience += reward.Experience

	// At most one level per completion, judged against the threshold of the
	// pre-completion level. A hard-quest burst can leave experience above
	// the next threshold until the next completion.
	leveledUp := false
	threshold := c.Level * ExpPerLevel
	if out.Experience >= threshold {
		out.Level++
		out.Experience -= threshold
		out.Health += LevelUpStatBonus
		out.Intelligence += LevelUpStatBonus
		out.Strength += LevelUpStatBonus
		leveledUp = true
	}

	dropped := ""
	if e.rnd() < LootDropChance {
		n := 1 + int(e.rnd()*float64(LootNumberMax))
		dropped = fmt.Sprintf("%s%d", LootLabelPrefix, n)
		out.Inventory = append(out.Inventory, dropped)
	}

	return domain.CompletionResult{
		Character:   out,
		Reward:      reward,
		LeveledUp:   leveledUp,
		NewLevel:    out.Level,
		DroppedItem: dropped,
	}
}

// ChangeAvatarStyle returns a copy of the character wearing the given style.
// Styles are stored as given, recognized or not; display layers fall back to
// the default swatch for IDs outside the catalog.
func ChangeAvatarStyle(c domain.Character, styleID string) domain.Character {
	out := c.Clone()
	out.AvatarStyle = styleID
	return out
}
