package domain

// Reward is the prize tier a task completion earns, selected by difficulty.
// Unrecognized difficulties resolve to the zero tier; completion still
// proceeds (marking the task done) but the character gains nothing.
type Reward struct {
	StatPoints int `json:"stat_points"`
	Gold       int `json:"gold"`
	Experience int `json:"experience"`
}

// IsZero reports whether the reward grants nothing
func (r Reward) IsZero() bool {
	return r.StatPoints == 0 && r.Gold == 0 && r.Experience == 0
}

// CompletionResult captures the outcome of applying one task completion:
// the full updated character snapshot plus what changed, so callers can
// persist, publish and display without recomputing.
type CompletionResult struct {
	Character   Character `json:"character"`
	Reward      Reward    `json:"reward"`
	LeveledUp   bool      `json:"leveled_up"`
	NewLevel    int       `json:"new_level"`
	DroppedItem string    `json:"dropped_item,omitempty"`
}
