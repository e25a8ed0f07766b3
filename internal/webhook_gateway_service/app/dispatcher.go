package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	notifdomain "github.com/taskflow/golang_services/internal/notification_sending_service/domain"
	"github.com/taskflow/golang_services/internal/webhook_gateway_service/domain"
)

// DispatchOutcome describes what dispatching one event produced.
type DispatchOutcome string

const (
	// OutcomeReplied means a keyword-routed or fallback reply was sent.
	OutcomeReplied DispatchOutcome = "replied"
	// OutcomeAcknowledged means a fixed media acknowledgment was sent.
	OutcomeAcknowledged DispatchOutcome = "acknowledged"
	// OutcomeIgnored means the event was logged only; a no-op is a valid
	// outcome, not an error.
	OutcomeIgnored DispatchOutcome = "ignored"
	// OutcomeStatusForwarded means a status update was handed to the tracker.
	OutcomeStatusForwarded DispatchOutcome = "status_forwarded"
	// OutcomeDropped means an unrecognized event was discarded.
	OutcomeDropped DispatchOutcome = "dropped"
)

// Canned replies of the TaskFlow auto-responder.
const (
	replyHelp = "🤖 TaskFlow Support\n\nHere's what I can help you with:\n" +
		"• Send \"status\" for project updates\n" +
		"• Send \"invoice\" for billing information\n\n" +
		"Our team will get back to you shortly."
	replyStatus = "📊 Project Status\n\nYou can view live project and task status " +
		"on your TaskFlow dashboard. A team member will follow up with details shortly."
	replyInvoice = "💰 Billing & Invoices\n\nFor invoice and payment questions, please " +
		"check the Invoices section of your dashboard. Our billing team has been notified."
	replyFallback = "Thanks for your message! A TaskFlow team member will get back to you soon."
	replyMediaAck = "📎 We received your attachment. A team member will review it shortly."
)

// NotificationSender sends one outbound notification and returns the
// provider-assigned message id.
type NotificationSender interface {
	Send(ctx context.Context, notification notifdomain.OutboundNotification) (string, error)
}

// StatusRecorder receives delivery status updates extracted from callbacks.
type StatusRecorder interface {
	RecordStatus(ctx context.Context, messageID, rawStatus string, observedAt time.Time) error
}

// DispatchSummary aggregates the outcome of one callback.
type DispatchSummary struct {
	Events   int
	Replies  int
	Failures int
}

// Dispatcher routes decoded inbound events: keyword-matched auto-replies for
// text, fixed acknowledgments for media, status forwarding, and logged no-ops
// for everything else. A failure on one event never blocks later events of
// the same callback.
type Dispatcher struct {
	sender     NotificationSender
	statuses   StatusRecorder
	messageLog domain.MessageLog
	logger     *slog.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(sender NotificationSender, statuses StatusRecorder, messageLog domain.MessageLog, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		statuses:   statuses,
		messageLog: messageLog,
		logger:     logger.With("component", "dispatcher"),
	}
}

// ProcessCallback parses one raw callback body and dispatches every decoded
// event in array order. It always succeeds from the caller's perspective;
// per-event failures are isolated and counted in the summary.
func (d *Dispatcher) ProcessCallback(ctx context.Context, rawPayload []byte) DispatchSummary {
	events := ParseEvents(rawPayload)

	var summary DispatchSummary
	for _, ev := range events {
		summary.Events++
		outcome, err := d.Dispatch(ctx, ev)
		if err != nil {
			summary.Failures++
			webhookDispatchFailuresCounter.WithLabelValues(ev.Kind.String()).Inc()
			d.logger.ErrorContext(ctx, "Failed to dispatch event",
				"error", err,
				"kind", ev.Kind.String(),
				"message_id", ev.MessageID,
			)
			continue
		}
		if outcome == OutcomeReplied || outcome == OutcomeAcknowledged {
			summary.Replies++
		}
		webhookEventsDispatchedCounter.WithLabelValues(ev.Kind.String(), string(outcome)).Inc()
	}
	return summary
}

// Dispatch routes a single event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.InboundEvent) (DispatchOutcome, error) {
	switch ev.Kind {
	case domain.KindMessage:
		return d.dispatchMessage(ctx, ev)
	case domain.KindStatusUpdate:
		if err := d.statuses.RecordStatus(ctx, ev.MessageID, ev.Status, ev.Timestamp); err != nil {
			return OutcomeStatusForwarded, err
		}
		return OutcomeStatusForwarded, nil
	case domain.KindSubscriptionChallenge:
		// The handshake is answered at the HTTP layer; nothing to do here.
		return OutcomeIgnored, nil
	default:
		d.logger.DebugContext(ctx, "Dropping unrecognized event")
		return OutcomeDropped, nil
	}
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, ev domain.InboundEvent) (DispatchOutcome, error) {
	d.recordInbound(ctx, ev)

	switch ev.MessageType {
	case domain.MessageTypeText:
		reply := routeKeywords(ev.BodyText)
		if _, err := d.sender.Send(ctx, notifdomain.NewTextNotification(ev.SenderAddress, reply)); err != nil {
			return OutcomeReplied, err
		}
		return OutcomeReplied, nil

	case domain.MessageTypeImage, domain.MessageTypeDocument:
		if _, err := d.sender.Send(ctx, notifdomain.NewTextNotification(ev.SenderAddress, replyMediaAck)); err != nil {
			return OutcomeAcknowledged, err
		}
		return OutcomeAcknowledged, nil

	case domain.MessageTypeButton:
		d.logger.InfoContext(ctx, "Button press received",
			"sender", ev.SenderAddress, "button_text", ev.BodyText, "message_id", ev.MessageID)
		return OutcomeIgnored, nil

	default:
		d.logger.InfoContext(ctx, "Unsupported message type received",
			"sender", ev.SenderAddress, "message_id", ev.MessageID)
		return OutcomeIgnored, nil
	}
}

// recordInbound writes the message to the MessageLog. Log failures are
// absorbed; losing an audit row must not break callback processing.
func (d *Dispatcher) recordInbound(ctx context.Context, ev domain.InboundEvent) {
	if d.messageLog == nil {
		return
	}
	if err := d.messageLog.RecordInbound(ctx, domain.NewInboundMessageRecord(ev)); err != nil {
		d.logger.WarnContext(ctx, "Failed to record inbound message",
			"error", err, "message_id", ev.MessageID)
	}
}

// routeKeywords picks the reply for a text body. Keyword sets are checked in
// priority order, first match wins: help/support, then status/project, then
// invoice/payment, then the generic fallback.
func routeKeywords(body string) string {
	text := strings.ToLower(strings.TrimSpace(body))
	switch {
	case strings.Contains(text, "help") || strings.Contains(text, "support"):
		return replyHelp
	case strings.Contains(text, "status") || strings.Contains(text, "project"):
		return replyStatus
	case strings.Contains(text, "invoice") || strings.Contains(text, "payment"):
		return replyInvoice
	default:
		return replyFallback
	}
}
