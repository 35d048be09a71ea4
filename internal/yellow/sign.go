package yellow

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// replayWindow bounds how long a seen nonce is remembered. It matches the
// processor's invoice payment window, so a replayed IPN older than this is
// already an expired invoice.
const replayWindow = 10 * time.Minute

// Signer signs outbound API requests and authenticates inbound IPNs with
// the merchant key pair. Verification fails closed: any mismatch or
// malformed input is a plain rejection, never an error path that could be
// mistaken for "valid".
type Signer struct {
	apiKey    string
	apiSecret []byte

	mu     sync.Mutex
	nonces map[string]time.Time
}

func NewSigner(apiKey, apiSecret string) *Signer {
	return &Signer{
		apiKey:    apiKey,
		apiSecret: []byte(apiSecret),
		nonces:    make(map[string]time.Time),
	}
}

// Sign computes the hex HMAC-SHA256 over nonce+url+body, the processor's
// request signature scheme.
func (s *Signer) Sign(nonce, url string, body []byte) string {
	mac := hmac.New(sha256.New, s.apiSecret)
	mac.Write([]byte(nonce))
	mac.Write([]byte(url))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// APIKey returns the merchant key identifier sent in the API-KEY header.
func (s *Signer) APIKey() string {
	return s.apiKey
}

// VerifyIPN reports whether an inbound notification genuinely came from
// the processor. It must return false on: unknown API key, empty
// signature or nonce, signature mismatch, or a nonce seen before within
// the replay window. The comparison is constant time.
func (s *Signer) VerifyIPN(targetURL, signature, apiKeyID, nonce string, body []byte) bool {
	if signature == "" || nonce == "" {
		return false
	}

	if !hmac.Equal([]byte(apiKeyID), []byte(s.apiKey)) {
		return false
	}

	expected := s.Sign(nonce, targetURL, body)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return false
	}

	return s.rememberNonce(nonce)
}

// rememberNonce records a nonce and rejects reuse. Returns false when the
// nonce was already seen inside the replay window.
func (s *Signer) rememberNonce(nonce string) bool {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for n, seen := range s.nonces {
		if now.Sub(seen) > replayWindow {
			delete(s.nonces, n)
		}
	}

	if _, replayed := s.nonces[nonce]; replayed {
		return false
	}
	s.nonces[nonce] = now
	return true
}
