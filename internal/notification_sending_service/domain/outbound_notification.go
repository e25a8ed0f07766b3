package domain

import (
	"fmt"
	"strings"
)

// PayloadKind selects the shape of an outbound notification.
type PayloadKind int

const (
	PayloadPlainText PayloadKind = iota
	PayloadTemplate
)

// String returns the string representation of the PayloadKind.
func (k PayloadKind) String() string {
	switch k {
	case PayloadTemplate:
		return "template"
	default:
		return "plain_text"
	}
}

// OutboundNotification is a value object describing one message to send.
// It is created and consumed within a single send operation.
type OutboundNotification struct {
	RecipientAddress string
	PayloadKind      PayloadKind

	// Plain text
	Body string

	// Template
	TemplateName       string
	TemplateLanguage   string
	TemplateParameters []string // ordered body parameters
}

// NewTextNotification builds a plain text notification.
func NewTextNotification(recipient, body string) OutboundNotification {
	return OutboundNotification{
		RecipientAddress: recipient,
		PayloadKind:      PayloadPlainText,
		Body:             body,
	}
}

// NewTemplateNotification builds a template notification with ordered body parameters.
func NewTemplateNotification(recipient, templateName, languageCode string, parameters []string) OutboundNotification {
	if languageCode == "" {
		languageCode = "en"
	}
	return OutboundNotification{
		RecipientAddress:   recipient,
		PayloadKind:        PayloadTemplate,
		TemplateName:       templateName,
		TemplateLanguage:   languageCode,
		TemplateParameters: parameters,
	}
}

// NormalizeRecipient strips every non-digit character from a recipient
// address, e.g. "+1 (555) 000-1111" becomes "15550001111".
func NormalizeRecipient(address string) string {
	var b strings.Builder
	for _, r := range address {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks that the payload fields match the PayloadKind.
// Recipient emptiness is checked separately after normalization.
func (n OutboundNotification) Validate() error {
	switch n.PayloadKind {
	case PayloadPlainText:
		if n.Body == "" {
			return fmt.Errorf("plain text notification requires a non-empty body")
		}
	case PayloadTemplate:
		if n.TemplateName == "" {
			return fmt.Errorf("template notification requires a template name")
		}
		if n.TemplateLanguage == "" {
			return fmt.Errorf("template notification requires a language code")
		}
	default:
		return fmt.Errorf("unknown payload kind %d", n.PayloadKind)
	}
	return nil
}
