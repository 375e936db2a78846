// Package idp adapts the hosted identity provider: end-user sessions are
// HS256 JWTs signed with a secret shared with the provider, and the principal
// id travels in the sub claim.
package idp

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bitewise/meal-tracker/internal/core/domain"
)

// JWTVerifier resolves end-user bearer tokens to principal identifiers.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and returns the sub claim. Every
// failure mode collapses into domain.ErrTokenInvalid; callers never learn
// whether the signature, expiry, or claims were at fault.
func (v *JWTVerifier) Verify(_ context.Context, token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrTokenInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrTokenInvalid
	}
	return sub, nil
}
