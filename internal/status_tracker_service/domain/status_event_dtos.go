package domain

import "time"

// SubjectStatusRaw is the NATS subject carrying raw status events from the
// webhook gateway to the status tracker.
const SubjectStatusRaw = "whatsapp.status.raw"

// StatusEventPayload is the wire format of a status update relayed from the
// webhook gateway over NATS (subject "whatsapp.status.raw").
type StatusEventPayload struct {
	MessageID        string    `json:"message_id"`
	Status           string    `json:"status"` // raw provider status string
	RecipientAddress string    `json:"recipient_address,omitempty"`
	ObservedAt       time.Time `json:"observed_at"`
}
