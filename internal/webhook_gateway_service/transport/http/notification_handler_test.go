package http_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	notifdomain "github.com/taskflow/golang_services/internal/notification_sending_service/domain"
	transport_http "github.com/taskflow/golang_services/internal/webhook_gateway_service/transport/http"
)

// MockNotificationTrigger provides a mock implementation of NotificationTrigger.
type MockNotificationTrigger struct {
	mock.Mock
}

func (m *MockNotificationTrigger) Send(ctx context.Context, notification notifdomain.OutboundNotification) (string, error) {
	args := m.Called(ctx, notification)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationTrigger) NotifyTaskAssignment(ctx context.Context, phoneNumber, taskTitle, assigneeName, projectName string) (string, error) {
	args := m.Called(ctx, phoneNumber, taskTitle, assigneeName, projectName)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationTrigger) NotifyTaskStatusUpdate(ctx context.Context, phoneNumber, taskTitle, oldStatus, newStatus, updatedBy string) (string, error) {
	args := m.Called(ctx, phoneNumber, taskTitle, oldStatus, newStatus, updatedBy)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationTrigger) NotifyProjectDeadline(ctx context.Context, phoneNumber, projectName string, daysLeft int) (string, error) {
	args := m.Called(ctx, phoneNumber, projectName, daysLeft)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationTrigger) NotifyInvoiceGenerated(ctx context.Context, phoneNumber, invoiceNumber, clientName, amount string) (string, error) {
	args := m.Called(ctx, phoneNumber, invoiceNumber, clientName, amount)
	return args.String(0), args.Error(1)
}

func (m *MockNotificationTrigger) NotifyInvoicePayment(ctx context.Context, phoneNumber, invoiceNumber, amount, clientName string) (string, error) {
	args := m.Called(ctx, phoneNumber, invoiceNumber, amount, clientName)
	return args.String(0), args.Error(1)
}

func newNotificationHandler(trigger *MockNotificationTrigger) *transport_http.NotificationHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return transport_http.NewNotificationHandler(trigger, logger, validator.New())
}

func TestNotificationHandler_TaskAssignment_Success(t *testing.T) {
	trigger := new(MockNotificationTrigger)
	handler := newNotificationHandler(trigger)

	trigger.On("NotifyTaskAssignment", mock.Anything, "+15550001111", "Ship v2", "Dana", "Website Redesign").
		Return("wamid.out-1", nil).Once()

	body := []byte(`{"phone_number":"+15550001111","task_title":"Ship v2","assignee_name":"Dana","project_name":"Website Redesign"}`)
	req := httptest.NewRequest(http.MethodPost, "/notifications/task-assignment", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.HandleTaskAssignment(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"provider_message_id":"wamid.out-1"}`, rr.Body.String())
	trigger.AssertExpectations(t)
}

func TestNotificationHandler_TaskAssignment_ValidationFailure(t *testing.T) {
	trigger := new(MockNotificationTrigger) // Must not be called
	handler := newNotificationHandler(trigger)

	body := []byte(`{"phone_number":"+15550001111"}`)
	req := httptest.NewRequest(http.MethodPost, "/notifications/task-assignment", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.HandleTaskAssignment(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Validation failed")
	trigger.AssertNotCalled(t, "NotifyTaskAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationHandler_SendMessage_PlainText(t *testing.T) {
	trigger := new(MockNotificationTrigger)
	handler := newNotificationHandler(trigger)

	trigger.On("Send", mock.Anything, mock.MatchedBy(func(n notifdomain.OutboundNotification) bool {
		return n.PayloadKind == notifdomain.PayloadPlainText && n.Body == "hello"
	})).Return("wamid.out-2", nil).Once()

	body := []byte(`{"recipient":"+15550001111","body":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/notifications/message", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.HandleSendMessage(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	trigger.AssertExpectations(t)
}

func TestNotificationHandler_SendMessage_Template(t *testing.T) {
	trigger := new(MockNotificationTrigger)
	handler := newNotificationHandler(trigger)

	trigger.On("Send", mock.Anything, mock.MatchedBy(func(n notifdomain.OutboundNotification) bool {
		return n.PayloadKind == notifdomain.PayloadTemplate &&
			n.TemplateName == "deadline_reminder" &&
			n.TemplateLanguage == "en" &&
			len(n.TemplateParameters) == 2
	})).Return("wamid.out-3", nil).Once()

	body := []byte(`{"recipient":"+15550001111","template_name":"deadline_reminder","template_parameters":["Website Redesign","3"]}`)
	req := httptest.NewRequest(http.MethodPost, "/notifications/message", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.HandleSendMessage(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	trigger.AssertExpectations(t)
}

func TestNotificationHandler_SendErrorMapping(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"invalid recipient", &notifdomain.SendError{Kind: notifdomain.SendErrorInvalidRecipient}, http.StatusBadRequest},
		{"provider rejected", &notifdomain.SendError{Kind: notifdomain.SendErrorProviderRejected, ProviderMessage: "unknown number"}, http.StatusBadGateway},
		{"transport failure", &notifdomain.SendError{Kind: notifdomain.SendErrorTransportFailure}, http.StatusGatewayTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trigger := new(MockNotificationTrigger)
			handler := newNotificationHandler(trigger)

			trigger.On("Send", mock.Anything, mock.Anything).Return("", tc.err).Once()

			body := []byte(`{"recipient":"+15550001111","body":"hello"}`)
			req := httptest.NewRequest(http.MethodPost, "/notifications/message", bytes.NewBuffer(body))
			rr := httptest.NewRecorder()

			handler.HandleSendMessage(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}
