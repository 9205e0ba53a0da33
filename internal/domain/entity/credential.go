package entity

import "time"

// Credential is an API client credential record. SecretHash holds the
// SHA-256 hex digest of the client secret; the plaintext secret is never
// persisted anywhere.
type Credential struct {
	ClientID    string
	SecretHash  string
	ClientName  string
	Description string
	Active      bool
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Usable reports whether the credential may authenticate requests at the
// given instant. A zero ExpiresAt means the credential never expires.
func (c *Credential) Usable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt.IsZero() {
		return true
	}

	return now.Before(c.ExpiresAt)
}
