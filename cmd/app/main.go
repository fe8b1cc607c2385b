package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questkeeper-app/questkeeper/internal/bootstrap"
	"github.com/questkeeper-app/questkeeper/internal/character"
	"github.com/questkeeper-app/questkeeper/internal/concurrency"
	"github.com/questkeeper-app/questkeeper/internal/config"
	"github.com/questkeeper-app/questkeeper/internal/eventlog"
	"github.com/questkeeper-app/questkeeper/internal/handler"
	"github.com/questkeeper-app/questkeeper/internal/identity"
	"github.com/questkeeper-app/questkeeper/internal/server"
	"github.com/questkeeper-app/questkeeper/internal/sse"
	"github.com/questkeeper-app/questkeeper/internal/task"
)

// ShutdownTimeout bounds how long graceful shutdown may take before
// in-flight work is abandoned
const ShutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings(cfg.DevMode)
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	handler.InitValidator()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	store, journalRepo, dbPool, err := bootstrap.InitializeStore(cfg, eventBus, publisher)
	if err != nil {
		slog.Error("Store initialization failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	hub := sse.NewHub()
	hub.Start()

	journalService := eventlog.NewService(journalRepo)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		Hub:      hub,
		Journal:  journalService,
	}); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	sched, workerPool := bootstrap.InitializeBackgroundJobs(cfg, journalService)

	characterService := character.NewService(store, publisher)
	taskService := task.NewService(store, characterService, concurrency.NewLockManager(), publisher)
	resolver := identity.NewHeaderResolver()

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, characterService, taskService, journalService, hub, resolver)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Hub:                hub,
		TaskService:        taskService,
		CharacterService:   characterService,
		Scheduler:          sched,
		WorkerPool:         workerPool,
		ResilientPublisher: publisher,
	})
}
