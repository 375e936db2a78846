package domain

import "errors"

var ErrInvalidIdentifiers = errors.New("missing or invalid identifiers")
var ErrRateLimited = errors.New("rate limit exceeded")
var ErrStaleGuestData = errors.New("guest data too old to merge")
var ErrMergeFailed = errors.New("merge failed")

// MergeResult reports the outcome of a completed ownership transfer.
// Counts come from authoritative reads against the owner filter, not from
// update-affected-row counts, since not every backend reports those reliably.
type MergeResult struct {
	GuestUserID     string
	AuthUserID      string
	AuthMethod      AuthMethod
	Skipped         bool
	MealLogs        int64
	UserNames       int64
	Subscriptions   int64
	PartialFailures []string
}

// SkippedMerge is the result returned when guest and authenticated
// identifiers are identical and there is nothing to transfer.
func SkippedMerge(userID string) *MergeResult {
	return &MergeResult{GuestUserID: userID, AuthUserID: userID, Skipped: true}
}
