package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	notifdomain "github.com/taskflow/golang_services/internal/notification_sending_service/domain"
)

// NotificationTrigger is the slice of the notification application service
// the HTTP layer needs.
type NotificationTrigger interface {
	Send(ctx context.Context, notification notifdomain.OutboundNotification) (string, error)
	NotifyTaskAssignment(ctx context.Context, phoneNumber, taskTitle, assigneeName, projectName string) (string, error)
	NotifyTaskStatusUpdate(ctx context.Context, phoneNumber, taskTitle, oldStatus, newStatus, updatedBy string) (string, error)
	NotifyProjectDeadline(ctx context.Context, phoneNumber, projectName string, daysLeft int) (string, error)
	NotifyInvoiceGenerated(ctx context.Context, phoneNumber, invoiceNumber, clientName, amount string) (string, error)
	NotifyInvoicePayment(ctx context.Context, phoneNumber, invoiceNumber, amount, clientName string) (string, error)
}

// NotificationHandler exposes the internal notification API consumed by the
// TaskFlow task/project/invoicing services.
type NotificationHandler struct {
	notifier NotificationTrigger
	logger   *slog.Logger
	validate *validator.Validate
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifier NotificationTrigger, logger *slog.Logger, validate *validator.Validate) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		logger:   logger.With("handler", "notifications"),
		validate: validate,
	}
}

// decodeAndValidate decodes the JSON body into req and validates it. On
// failure it writes the error response and returns false.
func (h *NotificationHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	ctx := r.Context()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode notification request JSON", "error", err)
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return false
	}
	if err := h.validate.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Failed to validate notification request", "error", err)
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// respond writes the outcome of a send, mapping SendError kinds to HTTP codes.
func (h *NotificationHandler) respond(w http.ResponseWriter, r *http.Request, providerMessageID string, err error) {
	ctx := r.Context()
	requestID := chi_middleware.GetReqID(ctx)
	logger := h.logger.With("request_id", requestID)

	if err != nil {
		logger.ErrorContext(ctx, "Notification send failed", "error", err)
		if se, ok := notifdomain.AsSendError(err); ok {
			switch se.Kind {
			case notifdomain.SendErrorInvalidRecipient:
				http.Error(w, "Invalid recipient address", http.StatusBadRequest)
			case notifdomain.SendErrorProviderRejected:
				http.Error(w, "Provider rejected the message", http.StatusBadGateway)
			case notifdomain.SendErrorTransportFailure:
				http.Error(w, "Provider unreachable", http.StatusGatewayTimeout)
			default:
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(SendMessageResponse{ProviderMessageID: providerMessageID})
}

// HandleSendMessage sends a raw text or template message.
func (h *NotificationHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var notification notifdomain.OutboundNotification
	if req.TemplateName != "" {
		notification = notifdomain.NewTemplateNotification(req.Recipient, req.TemplateName, req.TemplateLanguage, req.TemplateParameters)
	} else {
		notification = notifdomain.NewTextNotification(req.Recipient, req.Body)
	}

	id, err := h.notifier.Send(r.Context(), notification)
	h.respond(w, r, id, err)
}

// HandleTaskAssignment notifies an assignee about a new task.
func (h *NotificationHandler) HandleTaskAssignment(w http.ResponseWriter, r *http.Request) {
	var req TaskAssignmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	id, err := h.notifier.NotifyTaskAssignment(r.Context(), req.PhoneNumber, req.TaskTitle, req.AssigneeName, req.ProjectName)
	h.respond(w, r, id, err)
}

// HandleTaskStatusUpdate announces a task status change.
func (h *NotificationHandler) HandleTaskStatusUpdate(w http.ResponseWriter, r *http.Request) {
	var req TaskStatusUpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	id, err := h.notifier.NotifyTaskStatusUpdate(r.Context(), req.PhoneNumber, req.TaskTitle, req.OldStatus, req.NewStatus, req.UpdatedBy)
	h.respond(w, r, id, err)
}

// HandleProjectDeadline sends a deadline reminder.
func (h *NotificationHandler) HandleProjectDeadline(w http.ResponseWriter, r *http.Request) {
	var req ProjectDeadlineRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	id, err := h.notifier.NotifyProjectDeadline(r.Context(), req.PhoneNumber, req.ProjectName, req.DaysLeft)
	h.respond(w, r, id, err)
}

// HandleInvoiceGenerated announces a generated invoice.
func (h *NotificationHandler) HandleInvoiceGenerated(w http.ResponseWriter, r *http.Request) {
	var req InvoiceGeneratedRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	id, err := h.notifier.NotifyInvoiceGenerated(r.Context(), req.PhoneNumber, req.InvoiceNumber, req.ClientName, req.Amount)
	h.respond(w, r, id, err)
}

// HandleInvoicePayment announces a received payment.
func (h *NotificationHandler) HandleInvoicePayment(w http.ResponseWriter, r *http.Request) {
	var req InvoicePaymentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	id, err := h.notifier.NotifyInvoicePayment(r.Context(), req.PhoneNumber, req.InvoiceNumber, req.Amount, req.ClientName)
	h.respond(w, r, id, err)
}
