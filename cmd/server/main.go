// Package main implements the entry point for the task-dispatch
// gateway: it accepts task submissions over HTTP, hands them to the
// worker pool through Kafka, and answers status polls from shared
// state in Redis.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/creatorlab/taskgate/internal/audit"
	"github.com/creatorlab/taskgate/internal/config"
	"github.com/creatorlab/taskgate/internal/platform/kafka"
	"github.com/creatorlab/taskgate/internal/platform/logger"
	"github.com/creatorlab/taskgate/internal/platform/redisstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("taskgate: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Server.CallTimeout)
	st, err := redisstore.Connect(connectCtx, cfg.Redis.Addr, cfg.Redis.DB)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			appLogger.Error("failed to close redis client", "error", err)
		}
	}()

	brokers := cfg.Kafka.BrokerList()
	publisher := kafka.NewPublisher(brokers, appLogger)
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("failed to close kafka publisher", "error", err)
		}
	}()
	groups := kafka.NewGroupInspector(brokers)

	var auditor audit.Auditor = audit.NopAuditor{}
	if cfg.Audit.Endpoint != "" {
		auditor = audit.NewHTTPAuditor(cfg.Audit.Endpoint, cfg.Server.CallTimeout)
	}

	app := newApplication(cfg, appLogger, st, publisher, groups, auditor)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("server listening",
			"port", cfg.Server.Port,
			"kafka_brokers", cfg.Kafka.Brokers,
			"redis_addr", cfg.Redis.Addr,
			"worker_group", cfg.Kafka.WorkerGroup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
