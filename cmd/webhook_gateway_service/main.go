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
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	notifapp "github.com/taskflow/golang_services/internal/notification_sending_service/app"
	"github.com/taskflow/golang_services/internal/notification_sending_service/provider"
	notifrepo "github.com/taskflow/golang_services/internal/notification_sending_service/repository/postgres"
	"github.com/taskflow/golang_services/internal/platform/config"
	"github.com/taskflow/golang_services/internal/platform/database"
	"github.com/taskflow/golang_services/internal/platform/logger"
	"github.com/taskflow/golang_services/internal/platform/messagebroker"
	natsadapter "github.com/taskflow/golang_services/internal/webhook_gateway_service/adapters/nats"
	"github.com/taskflow/golang_services/internal/webhook_gateway_service/app"
	gatewayrepo "github.com/taskflow/golang_services/internal/webhook_gateway_service/repository/postgres"
	httptransport "github.com/taskflow/golang_services/internal/webhook_gateway_service/transport/http"
)

const serviceName = "webhook_gateway_service"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Webhook gateway service starting...", "port", cfg.WebhookGatewayPort)

	if err := cfg.ValidateWebhookCredentials(); err != nil {
		appLogger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.ValidateProviderCredentials(); err != nil {
		appLogger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewDBPool(context.Background(), cfg.PostgresDSN)
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	appLogger.Info("Webhook gateway connected to PostgreSQL database")

	natsClient, err := messagebroker.NewNatsClient(cfg.NATSUrl, serviceName, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer natsClient.Close()
	appLogger.Info("Successfully connected to NATS")

	// Repositories
	messageLog := gatewayrepo.NewPgMessageLogRepository(dbPool, appLogger)
	sendAudit := notifrepo.NewPgSendAuditRepository(dbPool, appLogger)

	// Outbound provider and notification service
	whatsappProvider := provider.NewWhatsAppCloudProvider(
		appLogger,
		cfg.WhatsAppAPIBaseURL,
		cfg.WhatsAppPhoneNumberID,
		cfg.WhatsAppAccessToken,
		time.Duration(cfg.WhatsAppSendTimeoutSeconds)*time.Second,
		nil,
	)
	notificationService := notifapp.NewNotificationService(whatsappProvider, sendAudit, appLogger)

	// Webhook processing pipeline
	verifier := app.NewVerifier(cfg.WebhookVerifyToken, cfg.WebhookAppSecret)
	statusPublisher := natsadapter.NewStatusPublisher(natsClient, appLogger)
	dispatcher := app.NewDispatcher(notificationService, statusPublisher, messageLog, appLogger)

	validate := validator.New()
	webhookHandler := httptransport.NewWebhookHandler(verifier, dispatcher, appLogger)
	notificationHandler := httptransport.NewNotificationHandler(notificationService, appLogger, validate)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/webhooks/whatsapp", webhookHandler.HandleVerification)
	r.Post("/webhooks/whatsapp", webhookHandler.HandleCallback)

	r.Route("/notifications", func(r chi.Router) {
		r.Post("/message", notificationHandler.HandleSendMessage)
		r.Post("/task-assignment", notificationHandler.HandleTaskAssignment)
		r.Post("/task-status-update", notificationHandler.HandleTaskStatusUpdate)
		r.Post("/project-deadline", notificationHandler.HandleProjectDeadline)
		r.Post("/invoice-generated", notificationHandler.HandleInvoiceGenerated)
		r.Post("/invoice-payment", notificationHandler.HandleInvoicePayment)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "service": serviceName})
	})
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.WebhookGatewayPort),
		Handler: r,
	}

	go func() {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down webhook gateway service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", "error", err)
	}
	appLogger.Info("Webhook gateway service stopped")
}
