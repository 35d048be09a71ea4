package yellow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigner_VerifyIPN(t *testing.T) {
	const (
		apiKey    = "key-123"
		apiSecret = "secret-456"
		targetURL = "https://shop.example.com/webhook/yellow"
	)

	body := []byte(`{"order":"1001","status":"authorizing"}`)

	newSigner := func() *Signer { return NewSigner(apiKey, apiSecret) }

	t.Run("ValidSignature", func(t *testing.T) {
		s := newSigner()
		sig := s.Sign("nonce-1", targetURL, body)
		assert.True(t, s.VerifyIPN(targetURL, sig, apiKey, "nonce-1", body))
	})

	t.Run("WrongSignature", func(t *testing.T) {
		s := newSigner()
		assert.False(t, s.VerifyIPN(targetURL, "deadbeef", apiKey, "nonce-1", body))
	})

	t.Run("EmptySignature", func(t *testing.T) {
		s := newSigner()
		assert.False(t, s.VerifyIPN(targetURL, "", apiKey, "nonce-1", body))
	})

	t.Run("EmptyNonce", func(t *testing.T) {
		s := newSigner()
		sig := s.Sign("", targetURL, body)
		assert.False(t, s.VerifyIPN(targetURL, sig, apiKey, "", body))
	})

	t.Run("UnknownAPIKey", func(t *testing.T) {
		s := newSigner()
		sig := s.Sign("nonce-1", targetURL, body)
		assert.False(t, s.VerifyIPN(targetURL, sig, "other-key", "nonce-1", body))
	})

	t.Run("MismatchedTargetURL", func(t *testing.T) {
		s := newSigner()
		sig := s.Sign("nonce-1", targetURL, body)
		assert.False(t, s.VerifyIPN("https://evil.example.com/webhook/yellow", sig, apiKey, "nonce-1", body))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		s := newSigner()
		other := NewSigner(apiKey, "another-secret")
		sig := other.Sign("nonce-1", targetURL, body)
		assert.False(t, s.VerifyIPN(targetURL, sig, apiKey, "nonce-1", body))
	})

	t.Run("NonceReplay", func(t *testing.T) {
		s := newSigner()
		sig := s.Sign("nonce-replay", targetURL, body)
		assert.True(t, s.VerifyIPN(targetURL, sig, apiKey, "nonce-replay", body))
		assert.False(t, s.VerifyIPN(targetURL, sig, apiKey, "nonce-replay", body))
	})

	// Fail-closed property: flipping any byte of the body invalidates the
	// signature computed over the original body.
	t.Run("MutatedBody", func(t *testing.T) {
		s := newSigner()
		for i := range body {
			nonce := fmt.Sprintf("nonce-body-%d", i)
			sig := s.Sign(nonce, targetURL, body)

			mutated := make([]byte, len(body))
			copy(mutated, body)
			mutated[i] ^= 0x01

			assert.False(t, s.VerifyIPN(targetURL, sig, apiKey, nonce, mutated),
				"mutated byte %d must not verify", i)
		}
	})

	t.Run("MutatedSignature", func(t *testing.T) {
		s := newSigner()
		for i := 0; i < 8; i++ {
			nonce := fmt.Sprintf("nonce-sig-%d", i)
			sig := []byte(s.Sign(nonce, targetURL, body))
			sig[i*3%len(sig)] ^= 0x01

			assert.False(t, s.VerifyIPN(targetURL, string(sig), apiKey, nonce, body))
		}
	})
}

func TestSigner_Sign(t *testing.T) {
	s := NewSigner("key-123", "secret-456")

	sig1 := s.Sign("n", "https://a", []byte("body"))
	sig2 := s.Sign("n", "https://a", []byte("body"))
	assert.Equal(t, sig1, sig2, "signing is deterministic")
	assert.Len(t, sig1, 64, "hex-encoded SHA-256")

	assert.NotEqual(t, sig1, s.Sign("m", "https://a", []byte("body")))
	assert.NotEqual(t, sig1, s.Sign("n", "https://b", []byte("body")))
	assert.NotEqual(t, sig1, s.Sign("n", "https://a", []byte("tail")))
}
