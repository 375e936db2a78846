package idp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bitewise/meal-tracker/internal/core/domain"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTVerifier_ResolvesSubject(t *testing.T) {
	v := NewJWTVerifier("secret")
	token := signToken(t, "secret", jwt.MapClaims{
		"sub": "u-9",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	principal, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if principal != "u-9" {
		t.Fatalf("unexpected principal: %s", principal)
	}
}

func TestJWTVerifier_WrongSecret(t *testing.T) {
	v := NewJWTVerifier("secret")
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": "u-9"})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTVerifier_ExpiredToken(t *testing.T) {
	v := NewJWTVerifier("secret")
	token := signToken(t, "secret", jwt.MapClaims{
		"sub": "u-9",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTVerifier_MissingSubject(t *testing.T) {
	v := NewJWTVerifier("secret")
	token := signToken(t, "secret", jwt.MapClaims{"role": "user"})

	if _, err := v.Verify(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestJWTVerifier_Garbage(t *testing.T) {
	v := NewJWTVerifier("secret")

	if _, err := v.Verify(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
