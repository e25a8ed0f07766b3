package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskflow/golang_services/internal/notification_sending_service/domain"
)

// WhatsAppCloudProvider sends messages through the Meta Graph API
// (https://graph.facebook.com/<version>/<phone_number_id>/messages).
type WhatsAppCloudProvider struct {
	logger      *slog.Logger
	httpClient  *http.Client
	sendURL     string
	accessToken string
}

// NewWhatsAppCloudProvider creates a new WhatsAppCloudProvider.
// baseURL example: "https://graph.facebook.com/v18.0". A nil httpClient gets
// a default with a bounded timeout so a slow provider cannot stall callers.
func NewWhatsAppCloudProvider(logger *slog.Logger, baseURL, phoneNumberID, accessToken string, timeout time.Duration, httpClient *http.Client) *WhatsAppCloudProvider {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &WhatsAppCloudProvider{
		logger:      logger.With("provider", "whatsapp_cloud"),
		httpClient:  httpClient,
		sendURL:     fmt.Sprintf("%s/%s/messages", baseURL, phoneNumberID),
		accessToken: accessToken,
	}
}

// cloudSendRequest is the Graph API message-send envelope.
type cloudSendRequest struct {
	MessagingProduct string         `json:"messaging_product"`
	To               string         `json:"to"`
	Type             string         `json:"type"`
	Text             *cloudText     `json:"text,omitempty"`
	Template         *cloudTemplate `json:"template,omitempty"`
}

type cloudText struct {
	Body string `json:"body"`
}

type cloudTemplate struct {
	Name       string           `json:"name"`
	Language   cloudLanguage    `json:"language"`
	Components []cloudComponent `json:"components,omitempty"`
}

type cloudLanguage struct {
	Code string `json:"code"`
}

type cloudComponent struct {
	Type       string           `json:"type"`
	Parameters []cloudParameter `json:"parameters"`
}

type cloudParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// cloudSendResponse is the Graph API success response.
type cloudSendResponse struct {
	MessagingProduct string `json:"messaging_product"`
	Contacts         []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// cloudErrorResponse is the Graph API error envelope.
type cloudErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func buildEnvelope(n domain.OutboundNotification) cloudSendRequest {
	req := cloudSendRequest{
		MessagingProduct: "whatsapp",
		To:               n.RecipientAddress,
	}
	switch n.PayloadKind {
	case domain.PayloadTemplate:
		req.Type = "template"
		tmpl := &cloudTemplate{
			Name:     n.TemplateName,
			Language: cloudLanguage{Code: n.TemplateLanguage},
		}
		if len(n.TemplateParameters) > 0 {
			params := make([]cloudParameter, 0, len(n.TemplateParameters))
			for _, p := range n.TemplateParameters {
				params = append(params, cloudParameter{Type: "text", Text: p})
			}
			tmpl.Components = []cloudComponent{{Type: "body", Parameters: params}}
		}
		req.Template = tmpl
	default:
		req.Type = "text"
		req.Text = &cloudText{Body: n.Body}
	}
	return req
}

// Send issues one synchronous message-send call to the Graph API.
func (p *WhatsAppCloudProvider) Send(ctx context.Context, notification domain.OutboundNotification) (*SendResponseDetails, error) {
	p.logger.InfoContext(ctx, "WhatsAppCloudProvider: Send called",
		"recipient", notification.RecipientAddress,
		"payload_kind", notification.PayloadKind.String())

	reqBytes, err := json.Marshal(buildEnvelope(notification))
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal Cloud API request", "error", err)
		return nil, fmt.Errorf("failed to marshal request for WhatsApp Cloud API: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.sendURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to create Cloud API HTTP request", "error", err)
		return nil, fmt.Errorf("failed to create HTTP request for WhatsApp Cloud API: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.accessToken)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to reach WhatsApp Cloud API", "error", err)
		return &SendResponseDetails{
				IsSuccess:      false,
				ProviderStatus: "FAILED_TRANSPORT",
				ErrorMessage:   err.Error(),
			}, &domain.SendError{
				Kind: domain.SendErrorTransportFailure,
				Err:  err,
			}
	}
	defer httpResp.Body.Close()

	respBodyBytes, readErr := io.ReadAll(httpResp.Body)
	if readErr != nil {
		p.logger.ErrorContext(ctx, "Failed to read Cloud API response body", "status_code", httpResp.StatusCode, "error", readErr)
		return &SendResponseDetails{
				IsSuccess:      false,
				ProviderStatus: fmt.Sprintf("FAILED_READ_ERR_%d", httpResp.StatusCode),
				ErrorMessage:   readErr.Error(),
			}, &domain.SendError{
				Kind: domain.SendErrorTransportFailure,
				Err:  readErr,
			}
	}
	p.logger.DebugContext(ctx, "Received Cloud API response", "status_code", httpResp.StatusCode, "body", string(respBodyBytes))

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		var successResp cloudSendResponse
		if err := json.Unmarshal(respBodyBytes, &successResp); err != nil {
			// Success at the HTTP level; the provider message id is just unavailable.
			p.logger.WarnContext(ctx, "Cloud API send succeeded but response body was unparseable",
				"status_code", httpResp.StatusCode, "error", err)
			return &SendResponseDetails{
				IsSuccess:      true,
				ProviderStatus: fmt.Sprintf("SENT_%d_UNPARSED_RESP", httpResp.StatusCode),
			}, nil
		}

		providerMsgID := ""
		if len(successResp.Messages) > 0 {
			providerMsgID = successResp.Messages[0].ID
		}

		p.logger.InfoContext(ctx, "Successfully sent message via Cloud API",
			"status_code", httpResp.StatusCode, "provider_message_id", providerMsgID)
		return &SendResponseDetails{
			ProviderMessageID: providerMsgID,
			IsSuccess:         true,
			ProviderStatus:    fmt.Sprintf("SENT_%d", httpResp.StatusCode),
		}, nil
	}

	var errorResp cloudErrorResponse
	providerMsg := ""
	if err := json.Unmarshal(respBodyBytes, &errorResp); err == nil {
		providerMsg = errorResp.Error.Message
	} else if len(respBodyBytes) > 0 && len(respBodyBytes) < 200 {
		providerMsg = string(respBodyBytes)
	}

	p.logger.WarnContext(ctx, "Cloud API rejected send",
		"status_code", httpResp.StatusCode, "provider_error", providerMsg)
	return &SendResponseDetails{
			IsSuccess:      false,
			ProviderStatus: fmt.Sprintf("FAILED_%d", httpResp.StatusCode),
			ErrorMessage:   providerMsg,
		}, &domain.SendError{
			Kind:            domain.SendErrorProviderRejected,
			ProviderMessage: providerMsg,
		}
}

// GetName returns the provider adapter name.
func (p *WhatsAppCloudProvider) GetName() string {
	return "whatsapp_cloud"
}
