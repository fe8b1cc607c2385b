package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/eventlog"
	"github.com/questkeeper-app/questkeeper/internal/metrics"
	"github.com/questkeeper-app/questkeeper/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler
// registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *sse.Hub
	Journal  eventlog.Service
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (business metrics from bus traffic)
// - Stream subscriber (bridges bus events into the SSE hub)
// - Quest journal (persists user-addressed events as history)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	subscriber := sse.NewSubscriber(deps.Hub, deps.EventBus)
	subscriber.Subscribe()
	slog.Info(LogMsgStreamSubscriberRegistered)

	deps.Journal.Subscribe(deps.EventBus)
	slog.Info(LogMsgJournalSubscriberRegistered)

	return nil
}
