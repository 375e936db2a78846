package ports

import (
	"context"

	"github.com/bitewise/meal-tracker/internal/core/domain"
)

// MergeInput carries the validated, authorized parameters of a merge request.
type MergeInput struct {
	GuestUserID string
	AuthUserID  string
	Auth        domain.Authorization
	ClientKey   string
}

// MergeService transfers ownership of all guest-owned records to the
// authenticated identity.
type MergeService interface {
	Merge(ctx context.Context, in MergeInput) (*domain.MergeResult, error)
}

// AuthInput is everything the credential check looks at, extracted from the
// request by the transport layer.
type AuthInput struct {
	BearerToken   string
	AdminHeader   string
	AdminBody     string
	ClaimedUserID string
}

// AuthValidator decides whether a request is authorized and by which scheme.
type AuthValidator interface {
	Authorize(ctx context.Context, in AuthInput) (domain.Authorization, error)
}
