package domain

import (
	"errors"
	"fmt"
)

// SendErrorKind classifies send failures. None of these are retried by the
// sender itself; retry policy belongs to the caller.
type SendErrorKind int

const (
	// SendErrorInvalidRecipient means the recipient address was empty after
	// normalization. Detected before any network call.
	SendErrorInvalidRecipient SendErrorKind = iota
	// SendErrorProviderRejected means the provider returned a non-success
	// HTTP status. The provider's error message is carried along.
	SendErrorProviderRejected
	// SendErrorTransportFailure means the outbound call failed at the
	// network level (connection error, timeout).
	SendErrorTransportFailure
)

// String returns the string representation of the SendErrorKind.
func (k SendErrorKind) String() string {
	switch k {
	case SendErrorInvalidRecipient:
		return "invalid_recipient"
	case SendErrorProviderRejected:
		return "provider_rejected"
	case SendErrorTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// SendError is the error type returned by the notification sender.
type SendError struct {
	Kind            SendErrorKind
	ProviderMessage string // provider-supplied error detail, if any
	Err             error  // underlying cause, if any
}

func (e *SendError) Error() string {
	msg := fmt.Sprintf("notification send failed (%s)", e.Kind)
	if e.ProviderMessage != "" {
		msg += ": " + e.ProviderMessage
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SendError) Unwrap() error { return e.Err }

// AsSendError unwraps err into a *SendError when possible.
func AsSendError(err error) (*SendError, bool) {
	var se *SendError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
