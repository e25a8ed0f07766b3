package domain

import (
	"strings"
	"time"
)

// DeliveryStatus is the normalized status of a previously sent message,
// as reported by the provider.
type DeliveryStatus int

const (
	// DeliveryStatusUnknown indicates an undetermined or unmapped status.
	DeliveryStatusUnknown DeliveryStatus = iota
	// DeliveryStatusSent means the provider accepted and sent the message.
	DeliveryStatusSent
	// DeliveryStatusDelivered means the message reached the recipient's device.
	DeliveryStatusDelivered
	// DeliveryStatusRead means the recipient read the message.
	DeliveryStatusRead
	// DeliveryStatusFailed means the provider reported a delivery failure.
	DeliveryStatusFailed
)

// String returns the string representation of the DeliveryStatus.
func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryStatusSent:
		return "sent"
	case DeliveryStatusDelivered:
		return "delivered"
	case DeliveryStatusRead:
		return "read"
	case DeliveryStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseDeliveryStatus maps a raw provider status string to a DeliveryStatus.
// Unmapped values become DeliveryStatusUnknown.
func ParseDeliveryStatus(raw string) DeliveryStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sent":
		return DeliveryStatusSent
	case "delivered":
		return DeliveryStatusDelivered
	case "read":
		return DeliveryStatusRead
	case "failed":
		return DeliveryStatusFailed
	default:
		return DeliveryStatusUnknown
	}
}

// DeliveryStatusRecord is the stored projection of the latest status for one
// provider message id. It is a last-write-wins projection keyed by ObservedAt,
// not a state machine: a failed status may still be followed by delivered.
type DeliveryStatusRecord struct {
	MessageID  string         `json:"message_id"` // opaque provider message id
	Status     DeliveryStatus `json:"status"`
	ObservedAt time.Time      `json:"observed_at"` // provider-reported timestamp
}
