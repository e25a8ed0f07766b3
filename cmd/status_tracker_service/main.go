package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/taskflow/golang_services/internal/platform/config"
	"github.com/taskflow/golang_services/internal/platform/database"
	"github.com/taskflow/golang_services/internal/platform/logger"
	"github.com/taskflow/golang_services/internal/platform/messagebroker"
	"github.com/taskflow/golang_services/internal/status_tracker_service/app"
	"github.com/taskflow/golang_services/internal/status_tracker_service/domain"
	"github.com/taskflow/golang_services/internal/status_tracker_service/repository/postgres"
	httptransport "github.com/taskflow/golang_services/internal/status_tracker_service/transport/http"
)

const (
	serviceName     = "status_tracker_service"
	queueGroup      = "status_tracker_workers"
	eventBufferSize = 256
	shutdownTimeout = 10 * time.Second
)

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Status tracker service starting...")

	dbPool, err := database.NewDBPool(mainCtx, cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Status tracker connected to PostgreSQL database")

	natsClient, err := messagebroker.NewNatsClient(cfg.NATSUrl, serviceName, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer natsClient.Close()
	appLogger.Info("Successfully connected to NATS")

	statusRepo := postgres.NewPgStatusRepository(dbPool, appLogger)
	statusProcessor := app.NewStatusProcessor(statusRepo, appLogger)

	eventChan := make(chan domain.StatusEventPayload, eventBufferSize)
	statusConsumer := app.NewStatusConsumer(natsClient, appLogger, eventChan)

	g, groupCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		return statusConsumer.StartConsuming(groupCtx, domain.SubjectStatusRaw, queueGroup)
	})

	g.Go(func() error {
		appLogger.Info("Starting status processing worker...")
		for {
			select {
			case event, ok := <-eventChan:
				if !ok {
					return nil
				}
				if err := statusProcessor.RecordStatus(groupCtx, event.MessageID, event.Status, event.ObservedAt); err != nil {
					appLogger.ErrorContext(groupCtx, "Failed to record status event",
						"error", err, "message_id", event.MessageID)
					// Processing continues; one bad event must not stop the worker.
				}
			case <-groupCtx.Done():
				appLogger.Info("Status processing worker stopping", "reason", groupCtx.Err())
				return nil
			}
		}
	})

	// Read-only status API plus health and metrics.
	statusHandler := httptransport.NewStatusHandler(statusProcessor, appLogger)
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Get("/statuses/{message_id}", statusHandler.HandleGetStatus)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": serviceName})
	})
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.StatusTrackerPort),
		Handler: r,
	}

	g.Go(func() error {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("Shutdown signal received", "signal", sig.String())
	case <-groupCtx.Done():
		appLogger.Error("A worker failed, shutting down", "error", groupCtx.Err())
	}

	mainCancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	}

	if err := g.Wait(); err != nil {
		appLogger.Error("Service exited with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Status tracker service stopped")
}
