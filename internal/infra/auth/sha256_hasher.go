// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"addrbook/internal/domain/service"
)

// sha256Hasher is a concrete implementation of the SecretHasher interface.
// The credential store holds SHA-256 hex digests, so the digest format here
// is fixed by the data model rather than configurable.
type sha256Hasher struct{}

// NewSHA256Hasher is the constructor for sha256Hasher.
func NewSHA256Hasher() service.SecretHasher {
	return &sha256Hasher{}
}

// Digest returns the lowercase hex SHA-256 digest of secret.
func (h *sha256Hasher) Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:])
}

// Equal compares two digests in constant time to avoid leaking how much of
// the digest matched through response timing.
func (h *sha256Hasher) Equal(storedDigest, computedDigest string) bool {
	return subtle.ConstantTimeCompare([]byte(storedDigest), []byte(computedDigest)) == 1
}
