package domain

// Meta-standard WhatsApp Cloud API webhook envelope.
// Only the fields the gateway reads are declared; everything else is ignored
// by encoding/json, which is the desired degrade-gracefully behavior.

// WebhookPayload is the top-level webhook delivery from the provider.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry represents one business account entry.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change wraps a single change notification.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue holds the message and status data of a change.
type ChangeValue struct {
	MessagingProduct string            `json:"messaging_product"`
	Metadata         Metadata          `json:"metadata"`
	Contacts         []Contact         `json:"contacts,omitempty"`
	Messages         []ProviderMessage `json:"messages,omitempty"`
	Statuses         []ProviderStatus  `json:"statuses,omitempty"`
}

// Metadata about the receiving phone number.
type Metadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

// Contact is a WhatsApp contact attached to a callback.
type Contact struct {
	Profile ContactProfile `json:"profile"`
	WaID    string         `json:"wa_id"`
}

// ContactProfile has the display name.
type ContactProfile struct {
	Name string `json:"name"`
}

// ProviderMessage represents one incoming message inside a callback.
type ProviderMessage struct {
	From      string         `json:"from"`
	ID        string         `json:"id"`
	Timestamp string         `json:"timestamp"` // epoch seconds as string
	Type      string         `json:"type"`
	Text      *TextContent   `json:"text,omitempty"`
	Image     *MediaContent  `json:"image,omitempty"`
	Document  *MediaContent  `json:"document,omitempty"`
	Button    *ButtonContent `json:"button,omitempty"`
}

// TextContent holds a text message body.
type TextContent struct {
	Body string `json:"body"`
}

// MediaContent references an uploaded media object (image, document).
type MediaContent struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type,omitempty"`
	SHA256   string `json:"sha256,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// ButtonContent holds a quick-reply button press.
type ButtonContent struct {
	Text    string `json:"text"`
	Payload string `json:"payload,omitempty"`
}

// ProviderStatus represents a delivery status update for a previously
// sent message (sent, delivered, read, failed).
type ProviderStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"` // epoch seconds as string
	RecipientID string `json:"recipient_id"`
}
