package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskflow/golang_services/internal/platform/messagebroker"
	statusdomain "github.com/taskflow/golang_services/internal/status_tracker_service/domain"
)

// StatusPublisher relays delivery status updates to the status tracker
// service over NATS. It satisfies the dispatcher's StatusRecorder interface,
// keeping webhook acknowledgment independent of tracker persistence.
type StatusPublisher struct {
	natsClient *messagebroker.NATSClient
	subject    string
	logger     *slog.Logger
}

// NewStatusPublisher creates a new StatusPublisher on the standard subject.
func NewStatusPublisher(natsClient *messagebroker.NATSClient, logger *slog.Logger) *StatusPublisher {
	return &StatusPublisher{
		natsClient: natsClient,
		subject:    statusdomain.SubjectStatusRaw,
		logger:     logger.With("component", "status_publisher"),
	}
}

// RecordStatus publishes one status event.
func (p *StatusPublisher) RecordStatus(ctx context.Context, messageID, rawStatus string, observedAt time.Time) error {
	payload := statusdomain.StatusEventPayload{
		MessageID:  messageID,
		Status:     rawStatus,
		ObservedAt: observedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	if err := p.natsClient.Publish(ctx, p.subject, data); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish status event",
			"error", err, "subject", p.subject, "message_id", messageID)
		return err
	}

	p.logger.DebugContext(ctx, "Published status event",
		"subject", p.subject, "message_id", messageID, "status", rawStatus)
	return nil
}
