package ports

import "context"

// SubscriptionRepository is the push-subscription store.
type SubscriptionRepository interface {
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) error
	CountByOwner(ctx context.Context, userID string) (int64, error)
}
