package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current version of the event schema
	EventSchemaVersion = "1.0"
)

// Resilient publisher configuration
const (
	// RetryQueueBufferSize is the buffer size for the retry queue channel
	RetryQueueBufferSize = 1000

	// DeadLetterFilePermissions is the file mode for dead letter files
	DeadLetterFilePermissions = 0644
)

// Log message templates
const (
	LogMsgPublishFailed      = "event publish failed, queued for retry"
	LogMsgRetryExhausted     = "event retries exhausted, writing to dead letter"
	LogMsgRetryQueueFull     = "retry queue full, writing event to dead letter"
	LogMsgDeadLetterFailed   = "failed to write event to dead letter file"
	LogMsgHandlerErrorFormat = "%d handler(s) failed for event type %s: %v"
)

// CalculateRetryDelay returns the backoff delay before the given retry
// attempt. Delays double with each attempt: base, 2x base, 4x base, ...
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 1 {
		return baseDelay
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
