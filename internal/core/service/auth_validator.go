package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/internal/core/ports"
)

type authValidator struct {
	verifier    ports.TokenVerifier
	adminSecret string
}

// NewAuthValidator returns an AuthValidator that tries the service-credential
// path (shared admin secret) before the end-user-token path. Decoupling "who
// may call this" from "is this the right account" lets one endpoint serve
// both automated callers and self-service users.
func NewAuthValidator(verifier ports.TokenVerifier, adminSecret string) ports.AuthValidator {
	return &authValidator{verifier: verifier, adminSecret: adminSecret}
}

// Authorize decides whether a request is authorized and by which scheme.
// Returns domain.ErrUnauthorized when neither path succeeds; no detail about
// which check failed is exposed.
func (v *authValidator) Authorize(ctx context.Context, in ports.AuthInput) (domain.Authorization, error) {
	// 1. Service-credential path: bearer header, admin header, body field,
	//    in that order. Any match grants admin privilege.
	for _, candidate := range []string{in.BearerToken, in.AdminHeader, in.AdminBody} {
		if v.matchesAdminSecret(candidate) {
			return domain.Authorization{Method: domain.AuthMethodAdmin}, nil
		}
	}

	// 2. End-user-token path: resolve the bearer token to a principal and
	//    require it to equal the claimed authUserId.
	if in.BearerToken == "" || in.ClaimedUserID == "" {
		return domain.Authorization{}, domain.ErrUnauthorized
	}

	principal, err := v.verifier.Verify(ctx, in.BearerToken)
	if err != nil || principal == "" {
		return domain.Authorization{}, domain.ErrUnauthorized
	}
	if principal != in.ClaimedUserID {
		// A valid token for the wrong account is indistinguishable from any
		// other failure to the caller.
		return domain.Authorization{}, domain.ErrUnauthorized
	}

	return domain.Authorization{Method: domain.AuthMethodUser, Principal: principal}, nil
}

// matchesAdminSecret compares a candidate against the server-held secret.
// Bcrypt hashes (recognised by their $2 prefix) are compared with bcrypt;
// plaintext secrets are compared in constant time.
func (v *authValidator) matchesAdminSecret(candidate string) bool {
	if v.adminSecret == "" || candidate == "" {
		return false
	}
	if strings.HasPrefix(v.adminSecret, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(v.adminSecret), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(v.adminSecret), []byte(candidate)) == 1
}
