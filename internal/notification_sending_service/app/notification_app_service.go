package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskflow/golang_services/internal/notification_sending_service/domain"
	"github.com/taskflow/golang_services/internal/notification_sending_service/provider"
)

// NotificationService is the application service for outbound notifications.
// It normalizes and validates a notification, delegates the wire call to the
// configured provider, and reports every attempt to the audit collaborator.
// It never retries on its own; retry policy belongs to the caller.
type NotificationService struct {
	provider provider.NotificationProvider
	audit    domain.SendAudit
	logger   *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(p provider.NotificationProvider, audit domain.SendAudit, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		provider: p,
		audit:    audit,
		logger:   logger.With("component", "notification_service"),
	}
}

// Send sends one notification and returns the provider-assigned message id.
// The recipient address is normalized to digits only; an address that is
// empty after normalization fails with SendErrorInvalidRecipient before any
// network call is made.
func (s *NotificationService) Send(ctx context.Context, notification domain.OutboundNotification) (string, error) {
	normalized := domain.NormalizeRecipient(notification.RecipientAddress)
	if normalized == "" {
		err := &domain.SendError{Kind: domain.SendErrorInvalidRecipient}
		s.logger.WarnContext(ctx, "Rejecting notification with empty normalized recipient",
			"raw_recipient", notification.RecipientAddress)
		notificationSendAttemptsCounter.WithLabelValues(s.provider.GetName(), "invalid_recipient").Inc()
		s.recordAttempt(ctx, notification, normalized, "", err)
		return "", err
	}
	notification.RecipientAddress = normalized

	if err := notification.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Rejecting notification with mismatched payload fields", "error", err)
		notificationSendAttemptsCounter.WithLabelValues(s.provider.GetName(), "invalid_payload").Inc()
		s.recordAttempt(ctx, notification, normalized, "", err)
		return "", fmt.Errorf("invalid notification payload: %w", err)
	}

	timer := prometheus.NewTimer(providerRequestDurationHist.WithLabelValues(s.provider.GetName()))
	resp, err := s.provider.Send(ctx, notification)
	timer.ObserveDuration()

	providerMessageID := ""
	if resp != nil {
		providerMessageID = resp.ProviderMessageID
	}
	s.recordAttempt(ctx, notification, normalized, providerMessageID, err)

	if err != nil {
		status := "transport_failure"
		if se, ok := domain.AsSendError(err); ok {
			status = se.Kind.String()
		}
		notificationSendAttemptsCounter.WithLabelValues(s.provider.GetName(), status).Inc()
		s.logger.ErrorContext(ctx, "Notification send failed",
			"recipient", normalized, "payload_kind", notification.PayloadKind.String(), "error", err)
		return "", err
	}

	notificationSendAttemptsCounter.WithLabelValues(s.provider.GetName(), "success").Inc()
	s.logger.InfoContext(ctx, "Notification sent",
		"recipient", normalized, "payload_kind", notification.PayloadKind.String(),
		"provider_message_id", providerMessageID)
	return providerMessageID, nil
}

// recordAttempt reports the attempt to the audit collaborator. Audit failures
// are logged but never change the outcome of the send.
func (s *NotificationService) recordAttempt(ctx context.Context, notification domain.OutboundNotification, normalizedRecipient, providerMessageID string, sendErr error) {
	if s.audit == nil {
		return
	}
	rec := &domain.SendAttemptRecord{
		ID:                uuid.New(),
		RecipientAddress:  normalizedRecipient,
		PayloadKind:       notification.PayloadKind.String(),
		ProviderMessageID: providerMessageID,
		Succeeded:         sendErr == nil,
		AttemptedAt:       time.Now().UTC(),
	}
	if sendErr != nil {
		rec.ErrorDetail = sendErr.Error()
		if se, ok := domain.AsSendError(sendErr); ok {
			rec.ErrorKind = se.Kind.String()
		}
	}
	if err := s.audit.RecordSendAttempt(ctx, rec); err != nil {
		s.logger.WarnContext(ctx, "Failed to record send attempt in audit log", "error", err)
	}
}

// The Notify* helpers below are pure formatting wrappers over Send. They
// build a fixed message from the supplied fields and introduce no control
// flow of their own.

// NotifyTaskAssignment tells an assignee about a newly assigned task.
func (s *NotificationService) NotifyTaskAssignment(ctx context.Context, phoneNumber, taskTitle, assigneeName, projectName string) (string, error) {
	message := fmt.Sprintf("🎯 New Task Assignment\n\nHi %s!\n\nYou've been assigned a new task:\n\"%s\"\n\nProject: %s\n\nPlease check your dashboard for more details.",
		assigneeName, taskTitle, projectName)
	return s.Send(ctx, domain.NewTextNotification(phoneNumber, message))
}

// NotifyTaskStatusUpdate announces a task status change.
func (s *NotificationService) NotifyTaskStatusUpdate(ctx context.Context, phoneNumber, taskTitle, oldStatus, newStatus, updatedBy string) (string, error) {
	message := fmt.Sprintf("📋 Task Status Update\n\nTask: \"%s\"\nStatus: %s → %s\nUpdated by: %s\n\nCheck your dashboard for details.",
		taskTitle, oldStatus, newStatus, updatedBy)
	return s.Send(ctx, domain.NewTextNotification(phoneNumber, message))
}

// NotifyProjectDeadline reminds about an approaching project deadline.
func (s *NotificationService) NotifyProjectDeadline(ctx context.Context, phoneNumber, projectName string, daysLeft int) (string, error) {
	message := fmt.Sprintf("⏰ Project Deadline Reminder\n\nProject: %s\nDeadline: %d days remaining\n\nPlease ensure all tasks are completed on time.",
		projectName, daysLeft)
	return s.Send(ctx, domain.NewTextNotification(phoneNumber, message))
}

// NotifyInvoiceGenerated announces a freshly generated invoice.
func (s *NotificationService) NotifyInvoiceGenerated(ctx context.Context, phoneNumber, invoiceNumber, clientName, amount string) (string, error) {
	message := fmt.Sprintf("💰 Invoice Generated\n\nInvoice #%s\nClient: %s\nAmount: %s\n\nThe invoice has been sent to the client.",
		invoiceNumber, clientName, amount)
	return s.Send(ctx, domain.NewTextNotification(phoneNumber, message))
}

// NotifyInvoicePayment announces a received invoice payment.
func (s *NotificationService) NotifyInvoicePayment(ctx context.Context, phoneNumber, invoiceNumber, amount, clientName string) (string, error) {
	message := fmt.Sprintf("✅ Payment Received\n\nInvoice #%s\nClient: %s\nAmount: %s\n\nPayment has been successfully processed.",
		invoiceNumber, clientName, amount)
	return s.Send(ctx, domain.NewTextNotification(phoneNumber, message))
}
