package ports

import "context"

// ProfileRepository is the user-profile (display name) store.
type ProfileRepository interface {
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) error
	CountByOwner(ctx context.Context, userID string) (int64, error)
}
