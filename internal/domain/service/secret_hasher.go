// Package service defines interfaces for core, stateless domain logic.
package service

// SecretHasher digests client secrets and compares digests. The stored
// format is fixed by the credential data model (SHA-256 hex), so the
// interface exists for testability rather than algorithm choice.
type SecretHasher interface {
	// Digest returns the lowercase hex digest of the given secret.
	Digest(secret string) string

	// Equal compares two digests in constant time.
	Equal(storedDigest, computedDigest string) bool
}
