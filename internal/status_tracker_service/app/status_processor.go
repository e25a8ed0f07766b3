package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskflow/golang_services/internal/status_tracker_service/domain"
)

// StatusProcessor applies delivery status updates to the status repository
// under the last-write-wins rule.
type StatusProcessor struct {
	statusRepo domain.StatusRepository
	logger     *slog.Logger
}

// NewStatusProcessor creates a new StatusProcessor instance.
func NewStatusProcessor(statusRepo domain.StatusRepository, logger *slog.Logger) *StatusProcessor {
	return &StatusProcessor{
		statusRepo: statusRepo,
		logger:     logger,
	}
}

// RecordStatus upserts the status record for messageID. An update whose
// observedAt is older than the stored record is ignored silently; an
// out-of-order callback is not an error.
func (p *StatusProcessor) RecordStatus(ctx context.Context, messageID, rawStatus string, observedAt time.Time) error {
	if messageID == "" {
		return fmt.Errorf("status update has empty message id")
	}

	status := domain.ParseDeliveryStatus(rawStatus)
	rec := domain.DeliveryStatusRecord{
		MessageID:  messageID,
		Status:     status,
		ObservedAt: observedAt,
	}

	applied, err := p.statusRepo.Upsert(ctx, rec)
	if err != nil {
		statusUpdatesProcessedCounter.WithLabelValues(status.String(), "error").Inc()
		p.logger.ErrorContext(ctx, "Failed to upsert delivery status",
			"error", err,
			"message_id", messageID,
			"status", status.String(),
		)
		return err
	}

	if !applied {
		statusUpdatesProcessedCounter.WithLabelValues(status.String(), "ignored_out_of_order").Inc()
		p.logger.DebugContext(ctx, "Ignored out-of-order status update",
			"message_id", messageID,
			"status", status.String(),
			"observed_at", observedAt,
		)
		return nil
	}

	statusUpdatesProcessedCounter.WithLabelValues(status.String(), "applied").Inc()
	p.logger.InfoContext(ctx, "Recorded delivery status",
		"message_id", messageID,
		"status", status.String(),
		"observed_at", observedAt,
	)
	return nil
}

// GetStatus returns the latest recorded status for messageID, or (nil, nil)
// when no callback has been observed for that id.
func (p *StatusProcessor) GetStatus(ctx context.Context, messageID string) (*domain.DeliveryStatusRecord, error) {
	return p.statusRepo.Get(ctx, messageID)
}
