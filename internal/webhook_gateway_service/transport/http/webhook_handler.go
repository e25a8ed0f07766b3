package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	chi_middleware "github.com/go-chi/chi/v5/middleware" // For GetReqID

	"github.com/taskflow/golang_services/internal/webhook_gateway_service/app"
)

const MaxRequestBodySize = 1 << 20 // 1 MB

// WebhookVerifier defines the verification contract the handler needs.
// Satisfied by app.Verifier; an interface keeps testing with mocks easy.
type WebhookVerifier interface {
	VerifySubscription(mode, providedToken, challenge string) (string, error)
	VerifySignature(rawBody []byte, signatureHeader string) bool
}

// CallbackProcessor parses and dispatches one verified callback body.
type CallbackProcessor interface {
	ProcessCallback(ctx context.Context, rawPayload []byte) app.DispatchSummary
}

type WebhookHandler struct {
	verifier  WebhookVerifier
	processor CallbackProcessor
	logger    *slog.Logger
}

func NewWebhookHandler(verifier WebhookVerifier, processor CallbackProcessor, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		processor: processor,
		logger:    logger.With("component", "webhook_handler"),
	}
}

// HandleVerification answers the provider's GET subscription handshake.
// On success the challenge is echoed verbatim; any mismatch gets a generic
// 403 with no detail about which check failed.
func (h *WebhookHandler) HandleVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chi_middleware.GetReqID(ctx)
	logger := h.logger.With("request_id", requestID)

	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	echo, err := h.verifier.VerifySubscription(mode, token, challenge)
	if err != nil {
		logger.WarnContext(ctx, "Webhook subscription verification failed", "mode", mode)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	logger.InfoContext(ctx, "Webhook subscription verified")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(echo)); err != nil {
		logger.WarnContext(ctx, "Failed to write challenge response", "error", err)
	}
}

// HandleCallback receives POST delivery callbacks. The body signature is
// checked before any processing; a signature failure is terminal (401).
// A verified callback is always acknowledged with 200 — per-message dispatch
// failures are isolated inside the processor and never surface here.
func (h *WebhookHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chi_middleware.GetReqID(ctx)
	logger := h.logger.With("request_id", requestID)

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	rawPayload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read webhook request body", "error", err)
		if err.Error() == "http: request body too large" {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		} else {
			http.Error(w, "Error reading request body", http.StatusBadRequest)
		}
		return
	}

	signature := r.Header.Get("X-Hub-Signature-256")
	if !h.verifier.VerifySignature(rawPayload, signature) {
		logger.WarnContext(ctx, "Webhook signature verification failed",
			"remote_addr", r.RemoteAddr, "signature_present", signature != "")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	logger.InfoContext(ctx, "Received webhook callback",
		"remote_addr", r.RemoteAddr,
		"payload_size", len(rawPayload))

	summary := h.processor.ProcessCallback(ctx, rawPayload)

	logger.InfoContext(ctx, "Webhook callback processed",
		"events", summary.Events,
		"replies", summary.Replies,
		"failures", summary.Failures)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "received"})
}
