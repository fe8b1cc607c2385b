package eventlog

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultRetentionDays bounds how far back the journal reaches
	DefaultRetentionDays = 90

	// MemoryEntriesPerUser caps the dev-mode ring buffer per user
	MemoryEntriesPerUser = 200
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventNotUserAddressed = "Event carries no user, skipping journal"
	LogMsgFailedToAppendEntry   = "Failed to append journal entry"
	LogMsgEntryAppended         = "Journal entry appended"
	LogMsgCleanupStarting       = "Starting journal cleanup"
	LogMsgCleanupFailed         = "Journal cleanup failed"
	LogMsgCleanupCompleted      = "Journal cleanup completed"
)
