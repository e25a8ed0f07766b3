package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/golang_services/internal/webhook_gateway_service/domain"
)

type PgMessageLogRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPgMessageLogRepository creates a new PostgreSQL implementation of MessageLog.
func NewPgMessageLogRepository(dbPool *pgxpool.Pool, logger *slog.Logger) *PgMessageLogRepository {
	return &PgMessageLogRepository{
		db:     dbPool,
		logger: logger,
	}
}

// RecordInbound inserts one received-message row into inbound_messages.
// Duplicate provider message ids (redelivered callbacks) are absorbed by
// ON CONFLICT DO NOTHING rather than surfaced as errors.
func (r *PgMessageLogRepository) RecordInbound(ctx context.Context, rec *domain.InboundMessageRecord) error {
	query := `
		INSERT INTO inbound_messages (
			id, provider_message_id, sender_address, sender_name,
			message_type, body_text, media_ref, received_at, recorded_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (provider_message_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.ProviderMessageID,
		rec.SenderAddress,
		rec.SenderName,
		rec.MessageType,
		rec.BodyText,
		rec.MediaRef,
		rec.ReceivedAt,
		rec.RecordedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error inserting inbound message into database",
			"error", err,
			"message_id", rec.ID,
			"provider_message_id", rec.ProviderMessageID,
		)
		return err
	}

	r.logger.DebugContext(ctx, "Recorded inbound message",
		"message_id", rec.ID, "provider_message_id", rec.ProviderMessageID)
	return nil
}
