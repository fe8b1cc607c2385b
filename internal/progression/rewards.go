package progression

import "github.com/questkeeper-app/questkeeper/internal/domain"

// rewardTable maps each recognized difficulty to its prize tier
var rewardTable = map[domain.Difficulty]domain.Reward{
	domain.DifficultyEasy:   {StatPoints: 3, Gold: 10, Experience: 20},
	domain.DifficultyMedium: {StatPoints: 7, Gold: 25, Experience: 50},
	domain.DifficultyHard:   {StatPoints: 15, Gold: 100, Experience: 100},
}

// RewardFor returns the prize tier for a difficulty. Unrecognized
// difficulties earn the zero tier; that is a policy, not an error.
func RewardFor(difficulty domain.Difficulty) domain.Reward {
	return rewardTable[difficulty]
}
