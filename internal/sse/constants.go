package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Stream-only frame types. Domain events go out under their bus type names
// (task.created, character.updated, ...).
const (
	// EventTypeConnected is the first frame on every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping frame type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected      = "SSE client connected"
	LogMsgClientDisconnected   = "SSE client disconnected"
	LogMsgEventBroadcast       = "Broadcasting SSE event"
	LogMsgWriteError           = "Failed to write SSE event"
	LogMsgInvalidPayload       = "Invalid event payload for SSE relay"
	LogMsgMissingTargetUser    = "Event carries no target user, not relayed"
	LogMsgSubscriberRegistered = "SSE subscriber registered for event types"
)
