package provider

import (
	"context"

	"github.com/taskflow/golang_services/internal/notification_sending_service/domain"
)

// SendResponseDetails is the normalized result of a provider send call.
type SendResponseDetails struct {
	ProviderMessageID string
	IsSuccess         bool
	ProviderStatus    string // raw provider status for logging/auditing
	ErrorMessage      string
}

// NotificationProvider is implemented by concrete messaging provider adapters.
// The notification is expected to arrive with an already-normalized recipient.
type NotificationProvider interface {
	Send(ctx context.Context, notification domain.OutboundNotification) (*SendResponseDetails, error)
	GetName() string
}
