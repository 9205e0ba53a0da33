// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	domainerrors "addrbook/internal/domain/errors"
	"addrbook/internal/domain/repository"
	"addrbook/internal/domain/service"
	"addrbook/internal/errors"
	"addrbook/internal/usecase"
)

const basicScheme = "Basic "

// authService implements the AuthUsecase interface.
type authService struct {
	credentials repository.CredentialRepository
	hasher      service.SecretHasher
	logger      *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	credentials repository.CredentialRepository,
	hasher service.SecretHasher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		credentials: credentials,
		hasher:      hasher,
		logger:      logger,
	}
}

// Authorize verifies a Basic authorization token against the credential
// store. The reason for a denial is logged for operators but never encoded
// in the returned error: a missing header, a malformed token, an unknown
// client and a wrong secret are indistinguishable to the caller.
func (srv *authService) Authorize(ctx context.Context, authorization, resource string) (*usecase.Principal, error) {
	if !strings.HasPrefix(authorization, basicScheme) {
		return nil, srv.deny(ctx, resource, "missing or non-Basic authorization header")
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authorization, basicScheme))
	if err != nil {
		return nil, srv.deny(ctx, resource, "authorization token is not valid base64")
	}

	clientID, clientSecret, found := strings.Cut(string(decoded), ":")
	if !found || clientID == "" || clientSecret == "" {
		return nil, srv.deny(ctx, resource, "authorization token is not an id:secret pair")
	}

	computed := srv.hasher.Digest(clientSecret)

	credential, err := srv.credentials.FindByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, srv.deny(ctx, resource, "unknown client id")
		}

		return nil, errors.Wrap(err, "failed to look up credential")
	}

	if !credential.Usable(time.Now().UTC()) {
		return nil, srv.deny(ctx, resource, "credential inactive or expired")
	}

	if !srv.hasher.Equal(credential.SecretHash, computed) {
		return nil, srv.deny(ctx, resource, "secret digest mismatch")
	}

	return &usecase.Principal{ClientID: clientID, Resource: resource}, nil
}

// deny records why authorization failed and returns the uniform error.
func (srv *authService) deny(ctx context.Context, resource, reason string) error {
	srv.logger.DebugContext(ctx, "Authorization denied",
		slog.String("resource", resource),
		slog.String("reason", reason),
	)

	return domainerrors.ErrUnauthorized
}
