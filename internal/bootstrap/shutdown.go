package bootstrap

import (
	"context"
	"log/slog"

	"github.com/questkeeper-app/questkeeper/internal/character"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/scheduler"
	"github.com/questkeeper-app/questkeeper/internal/server"
	"github.com/questkeeper-app/questkeeper/internal/sse"
	"github.com/questkeeper-app/questkeeper/internal/task"
	"github.com/questkeeper-app/questkeeper/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Hub                *sse.Hub
	TaskService        task.Service
	CharacterService   character.Service
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. SSE hub (open event streams end, so the server can drain)
// 2. HTTP server (stop accepting new requests)
// 3. Application services (complete in-flight operations)
// 4. Scheduler, then worker pool (stop ticking, drain queued jobs)
// 5. Event publisher (flush pending events to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// The hub stops first: server.Stop waits for active connections, and
	// event stream requests only return once their client channel closes
	if components.Hub != nil {
		components.Hub.Stop()
	}

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	shutdownService(ctx, ServiceNameTask, components.TaskService)
	shutdownService(ctx, ServiceNameCharacter, components.CharacterService)

	// The scheduler stops before the pool so nothing enqueues into a
	// draining queue
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}

// shutdownService is a helper that shuts down a service and logs any errors.
type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
