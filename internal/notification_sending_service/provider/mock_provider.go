package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/golang_services/internal/notification_sending_service/domain"
)

// MockNotificationProvider is a test implementation of NotificationProvider.
type MockNotificationProvider struct {
	logger         *slog.Logger
	FailSend       bool          // Control whether Send should simulate failure
	SimulatedDelay time.Duration // To simulate network latency
}

// NewMockNotificationProvider creates a new MockNotificationProvider.
func NewMockNotificationProvider(logger *slog.Logger, failSend bool, delay time.Duration) *MockNotificationProvider {
	return &MockNotificationProvider{
		logger:         logger.With("provider", "mock"),
		FailSend:       failSend,
		SimulatedDelay: delay,
	}
}

// Send simulates sending a notification.
func (p *MockNotificationProvider) Send(ctx context.Context, notification domain.OutboundNotification) (*SendResponseDetails, error) {
	p.logger.InfoContext(ctx, "MockNotificationProvider: Send called",
		"recipient", notification.RecipientAddress,
		"payload_kind", notification.PayloadKind.String())

	if p.SimulatedDelay > 0 {
		time.Sleep(p.SimulatedDelay)
	}

	if p.FailSend {
		p.logger.WarnContext(ctx, "mock provider simulated send failure", "recipient", notification.RecipientAddress)
		return &SendResponseDetails{
				IsSuccess:      false,
				ProviderStatus: "FAILED_MOCK",
				ErrorMessage:   "mock provider simulated send failure",
			}, &domain.SendError{
				Kind:            domain.SendErrorProviderRejected,
				ProviderMessage: "mock provider simulated send failure",
			}
	}

	providerMsgID := "mock-" + uuid.NewString()
	return &SendResponseDetails{
		ProviderMessageID: providerMsgID,
		IsSuccess:         true,
		ProviderStatus:    "SENT_MOCK_OK",
	}, nil
}

// GetName returns the name of the provider.
func (p *MockNotificationProvider) GetName() string {
	return "mock"
}
