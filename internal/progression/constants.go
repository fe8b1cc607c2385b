package progression

// Derived-stat formula constants
const (
	// BaseHealth is the flat floor added to every character's max health
	BaseHealth = 50.0

	// HealthPerPoint is max health gained per health attribute point
	HealthPerPoint = 2.0

	// HealthPerLevel is max health gained per character level
	HealthPerLevel = 10.0

	// ManaPerPoint is max mana gained per intelligence point
	ManaPerPoint = 5.0

	// ManaPerLevel is max mana gained per character level
	ManaPerLevel = 5.0

	// AttackPerPoint is attack gained per strength point
	AttackPerPoint = 1.5

	// AttackPerLevel is attack gained per character level
	AttackPerLevel = 2.0

	// DefensePerPoint is defense gained per health attribute point
	DefensePerPoint = 0.8

	// DefensePerLevel is defense gained per character level
	DefensePerLevel = 1.0
)

// Leveling constants
const (
	// ExpPerLevel scales the level-up threshold: a character levels when
	// experience reaches level * ExpPerLevel
	ExpPerLevel = 100

	// LevelUpStatBonus is the flat bonus applied to health, intelligence
	// and strength on every level-up
	LevelUpStatBonus = 5
)

// Loot constants
const (
	// LootDropChance is the probability a completion drops an item
	LootDropChance = 0.1

	// LootNumberMax bounds the random item number: labels carry [1, LootNumberMax]
	LootNumberMax = 100

	// LootLabelPrefix starts every dropped item label
	LootLabelPrefix = "Item #"
)
