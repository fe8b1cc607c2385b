package domain

import "time"

// Difficulty grades a task and selects its reward tier
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestType categorizes a task and steers which attributes its rewards feed
type QuestType string

const (
	QuestTypeGeneral    QuestType = "general"
	QuestTypePhysical   QuestType = "physical"
	QuestTypeMental     QuestType = "mental"
	QuestTypeProduction QuestType = "production"
)

// KnownDifficulty reports whether d is one of the recognized grades.
// Unrecognized values are stored as given; they simply earn nothing.
func KnownDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// KnownQuestType reports whether t is one of the recognized categories.
// Unrecognized values fall back to the general allocation.
func KnownQuestType(t QuestType) bool {
	switch t {
	case QuestTypeGeneral, QuestTypePhysical, QuestTypeMental, QuestTypeProduction:
		return true
	default:
		return false
	}
}

// Task is a user-defined quest. Tasks are created by explicit user action,
// completed at most once, and leave the active view when completed.
type Task struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
	Type       QuestType  `json:"type"`
	Completed  bool       `json:"completed"`
	CreatedAt  time.Time  `json:"created_at"`
}
