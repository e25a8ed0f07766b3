package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InboundMessageRecord is the durable record of one received message.
type InboundMessageRecord struct {
	ID                uuid.UUID `json:"id"`
	ProviderMessageID string    `json:"provider_message_id"`
	SenderAddress     string    `json:"sender_address"`
	SenderName        string    `json:"sender_name,omitempty"`
	MessageType       string    `json:"message_type"`
	BodyText          string    `json:"body_text,omitempty"`
	MediaRef          string    `json:"media_ref,omitempty"`
	ReceivedAt        time.Time `json:"received_at"` // provider timestamp
	RecordedAt        time.Time `json:"recorded_at"` // when the gateway logged it
}

// NewInboundMessageRecord builds a record from a decoded event.
// The caller is expected to pass a KindMessage event.
func NewInboundMessageRecord(ev InboundEvent) *InboundMessageRecord {
	return &InboundMessageRecord{
		ID:                uuid.New(),
		ProviderMessageID: ev.MessageID,
		SenderAddress:     ev.SenderAddress,
		SenderName:        ev.SenderName,
		MessageType:       ev.MessageType.String(),
		BodyText:          ev.BodyText,
		MediaRef:          ev.MediaRef,
		ReceivedAt:        ev.Timestamp,
		RecordedAt:        time.Now().UTC(),
	}
}

// MessageLog is the persistence collaborator for received messages.
// Durability requirements belong to the implementation, not the gateway.
type MessageLog interface {
	RecordInbound(ctx context.Context, rec *InboundMessageRecord) error
}
