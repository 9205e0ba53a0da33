// Package usecase contains the application-specific business rules.
package usecase

import "context"

// Principal is the identity produced by a successful authorization
// decision, scoped to the resource that was requested.
type Principal struct {
	ClientID string
	Resource string
}

// AuthUsecase is the authorization engine. It decides whether a raw
// Authorization header value may act on a resource.
type AuthUsecase interface {
	// Authorize verifies a Basic authorization token against the credential
	// store. On success it returns the principal; on any failure it returns
	// the uniform unauthorized error without revealing which step failed.
	Authorize(ctx context.Context, authorization, resource string) (*Principal, error)
}
