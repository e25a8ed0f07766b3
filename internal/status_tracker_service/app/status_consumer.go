package app

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/taskflow/golang_services/internal/platform/messagebroker"
	"github.com/taskflow/golang_services/internal/status_tracker_service/domain"
)

// StatusConsumer consumes raw status events from NATS and forwards the
// deserialized payloads to a processing channel.
type StatusConsumer struct {
	natsClient *messagebroker.NATSClient
	logger     *slog.Logger
	outputChan chan<- domain.StatusEventPayload
}

// NewStatusConsumer creates a new StatusConsumer.
func NewStatusConsumer(natsClient *messagebroker.NATSClient, logger *slog.Logger, outputChan chan<- domain.StatusEventPayload) *StatusConsumer {
	return &StatusConsumer{
		natsClient: natsClient,
		logger:     logger,
		outputChan: outputChan,
	}
}

// StartConsuming subscribes to the given NATS subject for status events.
// It is blocking and designed to be run in a goroutine; it returns when the
// context is cancelled or the subscription fails.
func (c *StatusConsumer) StartConsuming(ctx context.Context, subject string, queueGroup string) error {
	msgHandler := func(msg *nats.Msg) {
		natsStatusEventsReceivedCounter.Inc()
		c.logger.DebugContext(ctx, "Received NATS status event", "subject", msg.Subject, "data_len", len(msg.Data))

		var payload domain.StatusEventPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.logger.ErrorContext(ctx, "Failed to deserialize NATS status event",
				"error", err, "subject", msg.Subject, "data", string(msg.Data))
			return
		}

		select {
		case c.outputChan <- payload:
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "Context cancelled, dropping status event",
				"message_id", payload.MessageID, "error", ctx.Err())
		}
	}

	c.logger.InfoContext(ctx, "Starting NATS status subscription", "subject", subject, "queue_group", queueGroup)
	err := c.natsClient.SubscribeToSubjectWithQueue(ctx, subject, queueGroup, msgHandler)
	if err != nil {
		c.logger.ErrorContext(ctx, "NATS status subscription failed", "error", err, "subject", subject)
		return err
	}

	c.logger.InfoContext(ctx, "NATS status subscription ended.", "subject", subject)
	return nil
}
