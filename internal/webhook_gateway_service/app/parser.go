package app

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/taskflow/golang_services/internal/webhook_gateway_service/domain"
)

const whatsAppBusinessObject = "whatsapp_business_account"

// ParseEvents deserializes a raw webhook body into normalized InboundEvents,
// preserving the provider's entry/change/message array order. It never fails:
// malformed JSON or an unexpected object type yields a single unrecognized
// event, and unknown message types degrade to MessageTypeUnsupported.
func ParseEvents(rawPayload []byte) []domain.InboundEvent {
	var payload domain.WebhookPayload
	if err := json.Unmarshal(rawPayload, &payload); err != nil {
		return []domain.InboundEvent{{Kind: domain.KindUnrecognized}}
	}
	if payload.Object != whatsAppBusinessObject {
		return []domain.InboundEvent{{Kind: domain.KindUnrecognized}}
	}

	var events []domain.InboundEvent
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			names := contactNames(change.Value.Contacts)
			for _, msg := range change.Value.Messages {
				events = append(events, messageEvent(msg, names))
			}
			for _, st := range change.Value.Statuses {
				events = append(events, statusEvent(st))
			}
		}
	}

	if len(events) == 0 {
		return []domain.InboundEvent{{Kind: domain.KindUnrecognized}}
	}
	return events
}

func contactNames(contacts []domain.Contact) map[string]string {
	if len(contacts) == 0 {
		return nil
	}
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		if c.WaID != "" && c.Profile.Name != "" {
			names[c.WaID] = c.Profile.Name
		}
	}
	return names
}

func messageEvent(msg domain.ProviderMessage, names map[string]string) domain.InboundEvent {
	ev := domain.InboundEvent{
		Kind:          domain.KindMessage,
		MessageID:     msg.ID,
		SenderAddress: msg.From,
		SenderName:    names[msg.From],
		Timestamp:     parseEpochSeconds(msg.Timestamp),
	}

	switch msg.Type {
	case "text":
		ev.MessageType = domain.MessageTypeText
		if msg.Text != nil {
			ev.BodyText = msg.Text.Body
		}
	case "image":
		ev.MessageType = domain.MessageTypeImage
		if msg.Image != nil {
			ev.MediaRef = msg.Image.ID
		}
	case "document":
		ev.MessageType = domain.MessageTypeDocument
		if msg.Document != nil {
			ev.MediaRef = msg.Document.ID
		}
	case "button":
		ev.MessageType = domain.MessageTypeButton
		if msg.Button != nil {
			ev.BodyText = msg.Button.Text
		}
	default:
		ev.MessageType = domain.MessageTypeUnsupported
	}
	return ev
}

func statusEvent(st domain.ProviderStatus) domain.InboundEvent {
	return domain.InboundEvent{
		Kind:          domain.KindStatusUpdate,
		MessageID:     st.ID,
		SenderAddress: st.RecipientID,
		Status:        st.Status,
		Timestamp:     parseEpochSeconds(st.Timestamp),
	}
}

// parseEpochSeconds converts the provider's epoch-seconds string timestamps.
// An unparseable value falls back to the current time rather than failing
// the whole event.
func parseEpochSeconds(raw string) time.Time {
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Unix(secs, 0).UTC()
}
