package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskflow/golang_services/internal/status_tracker_service/domain"
)

// StatusReader is the read-only slice of the status processor the HTTP
// layer needs.
type StatusReader interface {
	GetStatus(ctx context.Context, messageID string) (*domain.DeliveryStatusRecord, error)
}

type StatusHandler struct {
	statuses StatusReader
	logger   *slog.Logger
}

func NewStatusHandler(statuses StatusReader, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		statuses: statuses,
		logger:   logger.With("handler", "statuses"),
	}
}

// HandleGetStatus looks up the latest delivery status for a message id.
// Absence means no status callback has been observed yet (404).
func (h *StatusHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	messageID := chi.URLParam(r, "message_id")
	if messageID == "" {
		http.Error(w, "Message id is required", http.StatusBadRequest)
		return
	}

	rec, err := h.statuses.GetStatus(ctx, messageID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to look up delivery status", "error", err, "message_id", messageID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		http.Error(w, "No status observed for message", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message_id":  rec.MessageID,
		"status":      rec.Status.String(),
		"observed_at": rec.ObservedAt,
	})
}
