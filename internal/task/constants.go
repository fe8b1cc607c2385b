package task

// Error message constants
const (
	ErrMsgTaskNameRequired    = "task name is required"
	ErrMsgFailedToSaveRewards = "failed to save completion rewards"
	ErrMsgFailedToClaimTask   = "failed to mark task completed"
)

// Log message constants
const (
	LogMsgTaskCreated         = "Task created"
	LogMsgTaskCompleted       = "Task completed"
	LogMsgTaskDeleted         = "Task deleted"
	LogMsgUnknownDifficulty   = "Task difficulty outside the known grades, rewards will be zero"
	LogMsgUnknownQuestType    = "Quest type outside the known categories, falls back to general"
	LogMsgServiceShuttingDown = "Task service shutting down..."
)
