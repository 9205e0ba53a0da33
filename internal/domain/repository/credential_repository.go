package repository

import (
	"context"

	"addrbook/internal/domain/entity"
	"addrbook/internal/errors"
)

// ErrCredentialNotFound is returned when no credential exists for a clientID.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository is the credential store adapter. The authorization
// engine only reads; writes happen through the out-of-band provisioning
// tool.
type CredentialRepository interface {
	// FindByClientID returns the credential record for clientID, or
	// ErrCredentialNotFound.
	FindByClientID(ctx context.Context, clientID string) (*entity.Credential, error)

	// Insert persists a new credential record.
	Insert(ctx context.Context, credential *entity.Credential) error
}
