package character

// Error message constants
const (
	ErrMsgFailedToLoadCharacter   = "failed to load character"
	ErrMsgFailedToCreateCharacter = "failed to create character"
	ErrMsgFailedToChangeAvatar    = "failed to change avatar style"
)

// Log message constants
const (
	LogMsgCharacterCreated    = "Character created with defaults"
	LogMsgAvatarChanged       = "Avatar style changed"
	LogMsgUnknownAvatarStyle  = "Storing avatar style outside the catalog"
	LogMsgServiceShuttingDown = "Character service shutting down..."
)
