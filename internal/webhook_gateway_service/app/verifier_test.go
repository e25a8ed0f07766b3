package app

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifier_VerifySubscription_Success(t *testing.T) {
	v := NewVerifier("my-verify-token", "secret")

	echo, err := v.VerifySubscription("subscribe", "my-verify-token", "challenge-1234")
	require.NoError(t, err)
	assert.Equal(t, "challenge-1234", echo)
}

func TestVerifier_VerifySubscription_WrongMode(t *testing.T) {
	v := NewVerifier("my-verify-token", "secret")

	echo, err := v.VerifySubscription("unsubscribe", "my-verify-token", "challenge-1234")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Empty(t, echo)
}

func TestVerifier_VerifySubscription_WrongToken(t *testing.T) {
	v := NewVerifier("my-verify-token", "secret")

	echo, err := v.VerifySubscription("subscribe", "some-other-token", "challenge-1234")
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.Empty(t, echo)
}

func TestVerifier_VerifySignature_Valid(t *testing.T) {
	v := NewVerifier("token", "app-secret")
	body := []byte(`{"object":"whatsapp_business_account"}`)

	assert.True(t, v.VerifySignature(body, signBody("app-secret", body)))
}

func TestVerifier_VerifySignature_TamperedBody(t *testing.T) {
	v := NewVerifier("token", "app-secret")
	body := []byte(`{"object":"whatsapp_business_account"}`)
	header := signBody("app-secret", body)

	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[0] ^= 0x01

	assert.False(t, v.VerifySignature(tampered, header))
}

func TestVerifier_VerifySignature_TamperedHeader(t *testing.T) {
	v := NewVerifier("token", "app-secret")
	body := []byte(`{"object":"whatsapp_business_account"}`)
	header := signBody("app-secret", body)

	// Flip one hex digit of the digest.
	bytes := []byte(header)
	if bytes[len(bytes)-1] == 'a' {
		bytes[len(bytes)-1] = 'b'
	} else {
		bytes[len(bytes)-1] = 'a'
	}

	assert.False(t, v.VerifySignature(body, string(bytes)))
}

func TestVerifier_VerifySignature_WrongSecret(t *testing.T) {
	v := NewVerifier("token", "app-secret")
	body := []byte(`payload`)

	assert.False(t, v.VerifySignature(body, signBody("other-secret", body)))
}

func TestVerifier_VerifySignature_MalformedHeader(t *testing.T) {
	v := NewVerifier("token", "app-secret")
	body := []byte(`payload`)

	assert.False(t, v.VerifySignature(body, ""))
	assert.False(t, v.VerifySignature(body, "sha1=abcdef"))
	assert.False(t, v.VerifySignature(body, "sha256=not-hex!"))
	assert.False(t, v.VerifySignature(body, "abcdef0123456789"))
}
