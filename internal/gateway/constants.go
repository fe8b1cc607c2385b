package gateway

import "time"

// Character cache settings
const (
	// DefaultCacheSize is the maximum number of cached characters
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the time-to-live for cached characters
	DefaultCacheTTL = 5 * time.Minute
)

// Watch channel settings
const (
	// WatchBufferSize is the buffer of the channel handed to watchers.
	// Snapshots coalesce latest-wins behind it, so slow consumers skip
	// intermediate states instead of blocking writers.
	WatchBufferSize = 1
)

// Error Messages
const (
	ErrMsgFailedToSaveCharacter = "failed to save character"
	ErrMsgFailedToCreateTask    = "failed to create task"
)

// Log Messages
const (
	LogMsgWatcherAttached     = "watcher attached"
	LogMsgWatcherDetached     = "watcher detached"
	LogMsgBadCharacterPayload = "character update event with undecodable payload"
)
