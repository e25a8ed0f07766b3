package app

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrVerificationFailed is returned for any subscription verification
// mismatch. It deliberately carries no detail about which check failed.
var ErrVerificationFailed = errors.New("webhook verification failed")

const signaturePrefix = "sha256="

// Verifier validates inbound webhook authenticity: the one-time subscription
// challenge handshake and the per-request HMAC body signature. Credentials
// are fixed at construction and never mutated.
type Verifier struct {
	verifyToken string
	appSecret   []byte
}

// NewVerifier creates a Verifier from the configured credentials.
func NewVerifier(verifyToken, appSecret string) *Verifier {
	return &Verifier{
		verifyToken: verifyToken,
		appSecret:   []byte(appSecret),
	}
}

// VerifySubscription checks the challenge-response handshake. It returns the
// challenge to echo back when mode is "subscribe" and the token matches the
// configured verify token; any mismatch yields ErrVerificationFailed.
func (v *Verifier) VerifySubscription(mode, providedToken, challenge string) (string, error) {
	if mode != "subscribe" {
		return "", ErrVerificationFailed
	}
	if subtle.ConstantTimeCompare([]byte(providedToken), []byte(v.verifyToken)) != 1 {
		return "", ErrVerificationFailed
	}
	return challenge, nil
}

// VerifySignature checks the X-Hub-Signature-256 header against the HMAC-SHA256
// digest of rawBody under the configured app secret. An absent or malformed
// header is simply false, never an error.
func (v *Verifier) VerifySignature(rawBody []byte, signatureHeader string) bool {
	if !strings.HasPrefix(signatureHeader, signaturePrefix) {
		return false
	}
	provided, err := hex.DecodeString(strings.TrimPrefix(signatureHeader, signaturePrefix))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.appSecret)
	mac.Write(rawBody)
	expected := mac.Sum(nil)

	return hmac.Equal(provided, expected)
}
