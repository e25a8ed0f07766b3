package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/golang_services/internal/notification_sending_service/domain"
)

type PgSendAuditRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPgSendAuditRepository creates a new PostgreSQL implementation of SendAudit.
func NewPgSendAuditRepository(dbPool *pgxpool.Pool, logger *slog.Logger) *PgSendAuditRepository {
	return &PgSendAuditRepository{
		db:     dbPool,
		logger: logger,
	}
}

// RecordSendAttempt inserts one send attempt row into send_attempts.
func (r *PgSendAuditRepository) RecordSendAttempt(ctx context.Context, rec *domain.SendAttemptRecord) error {
	query := `
		INSERT INTO send_attempts (
			id, recipient_address, payload_kind, provider_message_id,
			succeeded, error_kind, error_detail, attempted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.RecipientAddress,
		rec.PayloadKind,
		rec.ProviderMessageID,
		rec.Succeeded,
		rec.ErrorKind,
		rec.ErrorDetail,
		rec.AttemptedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error inserting send attempt into database",
			"error", err,
			"attempt_id", rec.ID,
			"recipient", rec.RecipientAddress,
		)
		return err
	}

	r.logger.DebugContext(ctx, "Recorded send attempt", "attempt_id", rec.ID, "succeeded", rec.Succeeded)
	return nil
}
