package postgres

// Error Messages - Character Operations
const (
	ErrMsgFailedToGetCharacter       = "failed to get character"
	ErrMsgFailedToUpsertCharacter    = "failed to upsert character"
	ErrMsgFailedToMarshalInventory   = "failed to marshal inventory"
	ErrMsgFailedToUnmarshalInventory = "failed to unmarshal inventory"
)

// Error Messages - Task Operations
const (
	ErrMsgFailedToCreateTask        = "failed to create task"
	ErrMsgFailedToGetTask           = "failed to get task"
	ErrMsgFailedToListTasks         = "failed to list tasks"
	ErrMsgFailedToScanTask          = "failed to scan task"
	ErrMsgFailedToMarkTaskCompleted = "failed to mark task completed"
	ErrMsgFailedToDeleteTask        = "failed to delete task"
)

// Error Messages - Journal Operations
const (
	ErrMsgFailedToMarshalPayload   = "failed to marshal event payload"
	ErrMsgFailedToUnmarshalPayload = "failed to unmarshal event payload"
	ErrMsgFailedToAppendEvent      = "failed to append event"
	ErrMsgFailedToListEvents       = "failed to list events"
	ErrMsgFailedToScanEvent        = "failed to scan event"
	ErrMsgFailedToCleanupEvents    = "failed to cleanup events"
)
