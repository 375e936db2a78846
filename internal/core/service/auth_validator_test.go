package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/internal/core/ports"
)

type stubVerifier struct {
	principal string
	err       error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (string, error) {
	return v.principal, v.err
}

func TestAuthValidator_AdminViaBearer(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{err: domain.ErrTokenInvalid}, "s3cret")

	authz, err := v.Authorize(context.Background(), ports.AuthInput{BearerToken: "s3cret"})
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if authz.Method != domain.AuthMethodAdmin {
		t.Fatalf("expected admin method, got %s", authz.Method)
	}
}

func TestAuthValidator_AdminViaHeader(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{err: domain.ErrTokenInvalid}, "s3cret")

	authz, err := v.Authorize(context.Background(), ports.AuthInput{AdminHeader: "s3cret"})
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if !authz.IsAdmin() {
		t.Fatalf("expected admin authorization")
	}
}

func TestAuthValidator_AdminViaBody(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{err: domain.ErrTokenInvalid}, "s3cret")

	authz, err := v.Authorize(context.Background(), ports.AuthInput{AdminBody: "s3cret"})
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if !authz.IsAdmin() {
		t.Fatalf("expected admin authorization")
	}
}

func TestAuthValidator_AdminBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	v := NewAuthValidator(&stubVerifier{err: domain.ErrTokenInvalid}, string(hash))

	if _, err := v.Authorize(context.Background(), ports.AuthInput{AdminHeader: "s3cret"}); err != nil {
		t.Fatalf("hashed secret did not authorize: %v", err)
	}
	if _, err := v.Authorize(context.Background(), ports.AuthInput{AdminHeader: "wrong"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestAuthValidator_EmptySecretNeverMatches(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{err: domain.ErrTokenInvalid}, "")

	_, err := v.Authorize(context.Background(), ports.AuthInput{AdminHeader: ""})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthValidator_EndUserMatch(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{principal: "u-9"}, "s3cret")

	authz, err := v.Authorize(context.Background(), ports.AuthInput{
		BearerToken:   "user-token",
		ClaimedUserID: "u-9",
	})
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if authz.Method != domain.AuthMethodUser {
		t.Fatalf("expected user method, got %s", authz.Method)
	}
	if authz.Principal != "u-9" {
		t.Fatalf("unexpected principal: %s", authz.Principal)
	}
}

func TestAuthValidator_EndUserMismatch(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{principal: "u-9"}, "s3cret")

	_, err := v.Authorize(context.Background(), ports.AuthInput{
		BearerToken:   "user-token",
		ClaimedUserID: "u-8",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for principal mismatch, got %v", err)
	}
}

func TestAuthValidator_EndUserTokenInvalid(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{err: domain.ErrTokenInvalid}, "s3cret")

	_, err := v.Authorize(context.Background(), ports.AuthInput{
		BearerToken:   "garbage",
		ClaimedUserID: "u-9",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthValidator_NoCredentials(t *testing.T) {
	v := NewAuthValidator(&stubVerifier{principal: "u-9"}, "s3cret")

	_, err := v.Authorize(context.Background(), ports.AuthInput{ClaimedUserID: "u-9"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without any credential, got %v", err)
	}
}
