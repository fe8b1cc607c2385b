package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// Request decoding / routing error messages
	ErrMsgInvalidRequest = "Invalid request body"
	ErrMsgMissingTaskID  = "Missing task ID"

	// Task operation error messages
	ErrMsgCreateTaskFailed   = "Failed to create task"
	ErrMsgListTasksFailed    = "Failed to list tasks"
	ErrMsgCompleteTaskFailed = "Failed to complete task"
	ErrMsgDeleteTaskFailed   = "Failed to delete task"

	// Character operation error messages
	ErrMsgGetCharacterFailed = "Failed to load character"
	ErrMsgGetStatsFailed     = "Failed to compute stats"
	ErrMsgChangeAvatarFailed = "Failed to change avatar"

	// Journal operation error messages
	ErrMsgGetHistoryFailed = "Failed to load history"
	ErrMsgInvalidLimit     = "Invalid limit parameter"
)

// Success messages for API responses
const (
	MsgTaskDeletedSuccess = "Task deleted successfully"
)
