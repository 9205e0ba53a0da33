package impl

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"addrbook/internal/domain/entity"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) Insert(ctx context.Context, address *entity.Address) error {
	args := m.Called(ctx, address)

	return args.Error(0)
}

func (m *mockAddressRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Address), args.Error(1)
}

func (m *mockAddressRepository) ListByUserAndSuburb(ctx context.Context, userID, suburb string) ([]*entity.Address, error) {
	args := m.Called(ctx, userID, suburb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Address), args.Error(1)
}

func (m *mockAddressRepository) ListByUserAndPostcode(ctx context.Context, userID, postcode string) ([]*entity.Address, error) {
	args := m.Called(ctx, userID, postcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Address), args.Error(1)
}

func (m *mockAddressRepository) Patch(ctx context.Context, userID string, addressID uuid.UUID, patch repository.AddressPatch) (*entity.Address, error) {
	args := m.Called(ctx, userID, addressID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Address), args.Error(1)
}

func (m *mockAddressRepository) Delete(ctx context.Context, userID string, addressID uuid.UUID) error {
	args := m.Called(ctx, userID, addressID)

	return args.Error(0)
}

type mockCredentialRepository struct {
	mock.Mock
}

func (m *mockCredentialRepository) FindByClientID(ctx context.Context, clientID string) (*entity.Credential, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Credential), args.Error(1)
}

func (m *mockCredentialRepository) Insert(ctx context.Context, credential *entity.Credential) error {
	args := m.Called(ctx, credential)

	return args.Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishAddressEvent(ctx context.Context, event *service.AddressEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// fakeHasher mirrors the production digest scheme without reaching into the
// infrastructure layer.
type fakeHasher struct{}

func (fakeHasher) Digest(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:])
}

func (fakeHasher) Equal(stored, computed string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(computed)) == 1
}
