package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/config"
	"github.com/questkeeper-app/questkeeper/internal/event"
)

// publisherSettings resolves the resilient-publisher knobs, substituting
// the bootstrap defaults for zero-valued config
func publisherSettings(cfg *config.Config) (maxRetries int, retryDelay time.Duration, deadLetterPath string) {
	maxRetries = cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}
	retryDelay = cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}
	deadLetterPath = cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}
	return maxRetries, retryDelay, deadLetterPath
}

// InitializeEventSystem builds the in-process bus and the resilient
// publisher in front of it, creating the dead-letter directory on the way.
// Everything that mutates state publishes through the returned publisher;
// the bus itself is handed to subscribers.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	maxRetries, retryDelay, deadLetterPath := publisherSettings(cfg)

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	resilientPublisher, err := event.NewResilientPublisher(eventBus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}
