package ports

import (
	"context"
	"time"

	"github.com/bitewise/meal-tracker/internal/core/domain"
)

// MealLogRepository is the primary owned-record store. Besides the ownership
// transfer primitives it exposes the latest-activity read the staleness guard
// depends on, and the listing read used by the calendar views.
type MealLogRepository interface {
	// ReassignOwner rewrites the owner of every meal log matching fromUserID.
	// Safe to re-invoke: a second call matches zero rows.
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) error
	// CountByOwner returns the authoritative number of meal logs owned by
	// userID.
	CountByOwner(ctx context.Context, userID string) (int64, error)
	// LatestActivity returns the creation time of the most recent meal log
	// owned by userID. Returns ok=false when the user has no meal logs.
	LatestActivity(ctx context.Context, userID string) (time.Time, bool, error)
	// FindByOwner returns up to limit meal logs owned by userID, newest first.
	FindByOwner(ctx context.Context, userID string, limit int64) ([]domain.MealLog, error)
}
