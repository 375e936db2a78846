package ports

import "context"

// TokenVerifier resolves an end-user bearer token to a principal identifier
// through the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (principalID string, err error)
}
