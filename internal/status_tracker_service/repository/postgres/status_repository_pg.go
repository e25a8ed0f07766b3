package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflow/golang_services/internal/status_tracker_service/domain"
)

type PgStatusRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPgStatusRepository creates a new PostgreSQL implementation of StatusRepository.
func NewPgStatusRepository(dbPool *pgxpool.Pool, logger *slog.Logger) *PgStatusRepository {
	return &PgStatusRepository{
		db:     dbPool,
		logger: logger,
	}
}

// Upsert inserts or overwrites the status row for rec.MessageID. The WHERE
// clause on the conflict update enforces last-write-wins: rows holding a
// strictly later observed_at are left untouched and Upsert reports false.
func (r *PgStatusRepository) Upsert(ctx context.Context, rec domain.DeliveryStatusRecord) (bool, error) {
	query := `
		INSERT INTO delivery_statuses (message_id, status, observed_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (message_id) DO UPDATE
		SET status = EXCLUDED.status,
		    observed_at = EXCLUDED.observed_at,
		    updated_at = EXCLUDED.updated_at
		WHERE delivery_statuses.observed_at <= EXCLUDED.observed_at
	`

	cmdTag, err := r.db.Exec(ctx, query,
		rec.MessageID,
		rec.Status.String(),
		rec.ObservedAt,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error upserting delivery status",
			"error", err,
			"message_id", rec.MessageID,
			"status", rec.Status.String(),
		)
		return false, err
	}

	// Zero rows affected means the conflict update was filtered out by the
	// observed_at guard, i.e. an out-of-order callback.
	return cmdTag.RowsAffected() > 0, nil
}

// Get returns the stored record for messageID, or (nil, nil) when absent.
func (r *PgStatusRepository) Get(ctx context.Context, messageID string) (*domain.DeliveryStatusRecord, error) {
	query := `
		SELECT message_id, status, observed_at
		FROM delivery_statuses
		WHERE message_id = $1
	`

	var rec domain.DeliveryStatusRecord
	var statusStr string
	err := r.db.QueryRow(ctx, query, messageID).Scan(&rec.MessageID, &statusStr, &rec.ObservedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.ErrorContext(ctx, "Error querying delivery status", "error", err, "message_id", messageID)
		return nil, err
	}
	rec.Status = domain.ParseDeliveryStatus(statusStr)
	return &rec, nil
}
