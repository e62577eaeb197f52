package policy

import "crypto/subtle"

// Guard verifies the shared secret presented by pot clients.
type Guard struct {
	secret []byte
}

// NewGuard wraps the process-wide shared secret.
func NewGuard(secret string) *Guard {
	return &Guard{secret: []byte(secret)}
}

// Authorize compares the supplied token against the configured secret in
// constant time. An empty configured secret authorizes nothing.
func (g *Guard) Authorize(token string) bool {
	if len(g.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), g.secret) == 1
}
