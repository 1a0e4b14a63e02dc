package main

import (
	"log/slog"

	"github.com/creatorlab/taskgate/internal/api"
	"github.com/creatorlab/taskgate/internal/audit"
	"github.com/creatorlab/taskgate/internal/config"
	"github.com/creatorlab/taskgate/internal/store"
	"github.com/creatorlab/taskgate/internal/task"
)

// application holds the gateway's wired components. All external
// clients are injected at construction time so tests can substitute
// fakes; nothing is reached through package globals.
type application struct {
	config *config.Config
	logger *slog.Logger

	dispatchHandler *api.DispatchHandler
	promptHandler   *api.PromptHandler
}

// newApplication wires the dispatch core and HTTP handlers from the
// given external clients.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	st store.Store,
	publisher task.Publisher,
	groups task.GroupCounter,
	auditor audit.Auditor,
) *application {
	timeout := cfg.Server.CallTimeout

	queue := task.NewPendingQueue(st, logger)
	dispatcher := task.NewDispatcher(st, publisher, queue, timeout, logger)
	resolver := task.NewResolver(st, queue, timeout, logger)
	readiness := task.NewReadiness(groups, queue, cfg.Kafka.WorkerGroup, timeout, logger)

	return &application{
		config:          cfg,
		logger:          logger,
		dispatchHandler: api.NewDispatchHandler(dispatcher, resolver, readiness, logger),
		promptHandler:   api.NewPromptHandler(auditor, logger),
	}
}
