package provider

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/golang_services/internal/notification_sending_service/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(serverURL string) *WhatsAppCloudProvider {
	return NewWhatsAppCloudProvider(newTestLogger(), serverURL, "100000000000001", "test-access-token", 2*time.Second, nil)
}

func TestWhatsAppCloudProvider_Send_Text_Success(t *testing.T) {
	var capturedAuth string
	var capturedPath string
	var capturedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		capturedPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","contacts":[{"input":"15550001111","wa_id":"15550001111"}],"messages":[{"id":"wamid.HBgLMTU1NQ=="}]}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	resp, err := p.Send(context.Background(), domain.NewTextNotification("15550001111", "🎯 New Task Assignment"))

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "wamid.HBgLMTU1NQ==", resp.ProviderMessageID)
	assert.Equal(t, "SENT_200", resp.ProviderStatus)

	assert.Equal(t, "Bearer test-access-token", capturedAuth)
	assert.Equal(t, "/100000000000001/messages", capturedPath)
	assert.Equal(t, "whatsapp", capturedBody["messaging_product"])
	assert.Equal(t, "15550001111", capturedBody["to"])
	assert.Equal(t, "text", capturedBody["type"])
	text, ok := capturedBody["text"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "🎯 New Task Assignment", text["body"])
	assert.NotContains(t, capturedBody, "template")
}

func TestWhatsAppCloudProvider_Send_Template_EnvelopeShape(t *testing.T) {
	var capturedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.tmpl-1"}]}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	notification := domain.NewTemplateNotification("15550001111", "deadline_reminder", "", []string{"Website Redesign", "3"})
	resp, err := p.Send(context.Background(), notification)

	require.NoError(t, err)
	assert.Equal(t, "wamid.tmpl-1", resp.ProviderMessageID)

	assert.Equal(t, "template", capturedBody["type"])
	tmpl, ok := capturedBody["template"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "deadline_reminder", tmpl["name"])
	lang, ok := tmpl["language"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "en", lang["code"])

	components, ok := tmpl["components"].([]interface{})
	require.True(t, ok)
	require.Len(t, components, 1)
	body, ok := components[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "body", body["type"])
	params, ok := body["parameters"].([]interface{})
	require.True(t, ok)
	require.Len(t, params, 2)
	first, ok := params[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "text", first["type"])
	assert.Equal(t, "Website Redesign", first["text"])
}

func TestWhatsAppCloudProvider_Send_ProviderRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"(#131030) Recipient phone number not in allowed list","type":"OAuthException","code":131030}}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	resp, err := p.Send(context.Background(), domain.NewTextNotification("19990000000", "hello"))

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, "FAILED_400", resp.ProviderStatus)

	se, ok := domain.AsSendError(err)
	require.True(t, ok)
	assert.Equal(t, domain.SendErrorProviderRejected, se.Kind)
	assert.Contains(t, se.ProviderMessage, "not in allowed list")
}

func TestWhatsAppCloudProvider_Send_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Connection refused from here on

	p := newTestProvider(server.URL)
	resp, err := p.Send(context.Background(), domain.NewTextNotification("15550001111", "hello"))

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, "FAILED_TRANSPORT", resp.ProviderStatus)

	se, ok := domain.AsSendError(err)
	require.True(t, ok)
	assert.Equal(t, domain.SendErrorTransportFailure, se.Kind)
}

func TestWhatsAppCloudProvider_Send_SuccessWithUnparseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	resp, err := p.Send(context.Background(), domain.NewTextNotification("15550001111", "hello"))

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.IsSuccess)
	assert.Empty(t, resp.ProviderMessageID)
}

func TestWhatsAppCloudProvider_GetName(t *testing.T) {
	p := newTestProvider("http://localhost:0")
	assert.Equal(t, "whatsapp_cloud", p.GetName())
}
