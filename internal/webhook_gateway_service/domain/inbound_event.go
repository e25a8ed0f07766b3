package domain

import "time"

// EventKind classifies a decoded webhook event.
type EventKind int

const (
	// KindUnrecognized is the catch-all for structurally valid but unexpected
	// payloads. Unrecognized events are dropped without error.
	KindUnrecognized EventKind = iota
	// KindSubscriptionChallenge is the one-time endpoint verification handshake.
	KindSubscriptionChallenge
	// KindMessage is an inbound user message.
	KindMessage
	// KindStatusUpdate is a delivery status report for a previously sent message.
	KindStatusUpdate
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	switch k {
	case KindSubscriptionChallenge:
		return "subscription_challenge"
	case KindMessage:
		return "message"
	case KindStatusUpdate:
		return "status_update"
	default:
		return "unrecognized"
	}
}

// MessageType classifies the content of a KindMessage event.
type MessageType int

const (
	MessageTypeUnsupported MessageType = iota
	MessageTypeText
	MessageTypeImage
	MessageTypeDocument
	MessageTypeButton
)

// String returns the string representation of the MessageType.
func (t MessageType) String() string {
	switch t {
	case MessageTypeText:
		return "text"
	case MessageTypeImage:
		return "image"
	case MessageTypeDocument:
		return "document"
	case MessageTypeButton:
		return "button"
	default:
		return "unsupported"
	}
}

// InboundEvent is the normalized form of one element of a provider callback.
// Exactly one group of fields is meaningful per Kind: message fields for
// KindMessage, status fields for KindStatusUpdate. Events are transient;
// they live for the duration of one callback handling operation.
type InboundEvent struct {
	Kind EventKind

	// Message fields (KindMessage)
	MessageID     string // opaque provider message id
	SenderAddress string // provider identifier, e.g. phone number
	SenderName    string // contact display name when provided, else empty
	MessageType   MessageType
	BodyText      string // text body or button text
	MediaRef      string // opaque media reference for image/document

	// Status fields (KindStatusUpdate). MessageID above carries the id of
	// the message the status refers to.
	Status string // raw provider status: sent, delivered, read, failed

	Timestamp time.Time
}
