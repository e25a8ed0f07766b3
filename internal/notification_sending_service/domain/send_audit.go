package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SendAttemptRecord captures one outbound send attempt, success or failure.
type SendAttemptRecord struct {
	ID                uuid.UUID `json:"id"`
	RecipientAddress  string    `json:"recipient_address"`
	PayloadKind       string    `json:"payload_kind"`
	ProviderMessageID string    `json:"provider_message_id,omitempty"`
	Succeeded         bool      `json:"succeeded"`
	ErrorKind         string    `json:"error_kind,omitempty"`
	ErrorDetail       string    `json:"error_detail,omitempty"`
	AttemptedAt       time.Time `json:"attempted_at"`
}

// SendAudit is the caller-supplied observability collaborator. The sender
// reports every attempt to it but does not persist anything itself.
type SendAudit interface {
	RecordSendAttempt(ctx context.Context, rec *SendAttemptRecord) error
}
