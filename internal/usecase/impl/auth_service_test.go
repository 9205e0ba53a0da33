package impl

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"addrbook/internal/domain/entity"
	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func basicToken(clientID, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(clientID+":"+secret))
}

func storedCredential(clientID, secret string) *entity.Credential {
	return &entity.Credential{
		ClientID:   clientID,
		SecretHash: fakeHasher{}.Digest(secret),
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestAuthService_Authorize_Success(t *testing.T) {
	mockCreds := new(mockCredentialRepository)
	service := NewAuthService(mockCreds, fakeHasher{}, discardLogger())

	ctx := context.Background()
	mockCreds.On("FindByClientID", ctx, "client-a").
		Return(storedCredential("client-a", "s3cret"), nil)

	principal, err := service.Authorize(ctx, basicToken("client-a", "s3cret"), "/v1/users/u1/addresses")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "client-a", principal.ClientID)
	assert.Equal(t, "/v1/users/u1/addresses", principal.Resource)
}

// Every denial reason must collapse to the same error value so a caller
// cannot probe which verification step failed.
func TestAuthService_Authorize_UniformDenial(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		setup func(m *mockCredentialRepository)
	}{
		{
			name:  "missing header",
			token: "",
		},
		{
			name:  "non-basic scheme",
			token: "Bearer abcdef",
		},
		{
			name:  "invalid base64",
			token: "Basic %%%not-base64%%%",
		},
		{
			name:  "no colon separator",
			token: "Basic " + base64.StdEncoding.EncodeToString([]byte("clientonly")),
		},
		{
			name:  "empty secret",
			token: "Basic " + base64.StdEncoding.EncodeToString([]byte("client-a:")),
		},
		{
			name:  "unknown client",
			token: basicToken("ghost", "s3cret"),
			setup: func(m *mockCredentialRepository) {
				m.On("FindByClientID", ctx, "ghost").
					Return(nil, repository.ErrCredentialNotFound)
			},
		},
		{
			name:  "wrong secret",
			token: basicToken("client-a", "wrong"),
			setup: func(m *mockCredentialRepository) {
				m.On("FindByClientID", ctx, "client-a").
					Return(storedCredential("client-a", "s3cret"), nil)
			},
		},
		{
			name:  "inactive credential",
			token: basicToken("client-a", "s3cret"),
			setup: func(m *mockCredentialRepository) {
				cred := storedCredential("client-a", "s3cret")
				cred.Active = false
				m.On("FindByClientID", ctx, "client-a").Return(cred, nil)
			},
		},
		{
			name:  "expired credential",
			token: basicToken("client-a", "s3cret"),
			setup: func(m *mockCredentialRepository) {
				cred := storedCredential("client-a", "s3cret")
				cred.ExpiresAt = time.Now().UTC().Add(-time.Hour)
				m.On("FindByClientID", ctx, "client-a").Return(cred, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCreds := new(mockCredentialRepository)
			if tt.setup != nil {
				tt.setup(mockCreds)
			}
			service := NewAuthService(mockCreds, fakeHasher{}, discardLogger())

			principal, err := service.Authorize(ctx, tt.token, "/v1/users/u1/addresses")
			assert.Nil(t, principal)
			assert.Equal(t, domainerrors.ErrUnauthorized, err)
		})
	}
}

// A credential store outage is the one failure that must not look like a
// denial; it surfaces as a server-side error instead.
func TestAuthService_Authorize_StoreFailure(t *testing.T) {
	mockCreds := new(mockCredentialRepository)
	service := NewAuthService(mockCreds, fakeHasher{}, discardLogger())

	ctx := context.Background()
	storeErr := domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to find credential")
	mockCreds.On("FindByClientID", ctx, mock.Anything).Return(nil, storeErr)

	principal, err := service.Authorize(ctx, basicToken("client-a", "s3cret"), "/v1/users/u1/addresses")
	assert.Nil(t, principal)
	require.Error(t, err)
	assert.NotEqual(t, domainerrors.ErrUnauthorized, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.HTTPCode())
}

func TestAuthService_Authorize_NeverExpires(t *testing.T) {
	mockCreds := new(mockCredentialRepository)
	service := NewAuthService(mockCreds, fakeHasher{}, discardLogger())

	ctx := context.Background()
	// Zero ExpiresAt means the credential never expires.
	mockCreds.On("FindByClientID", ctx, "client-a").
		Return(storedCredential("client-a", "s3cret"), nil)

	principal, err := service.Authorize(ctx, basicToken("client-a", "s3cret"), "/v1/users/u1/addresses")
	require.NoError(t, err)
	assert.NotNil(t, principal)
}
