package service

import (
	"github.com/rs/zerolog"

	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/pkg/logger"
)

// AuditLogger emits one structured record per merge attempt. Outside a
// development environment raw identifiers never reach the log stream; only
// redacted forms appear.
type AuditLogger struct {
	log         zerolog.Logger
	development bool
}

func NewAuditLogger(log zerolog.Logger, development bool) *AuditLogger {
	return &AuditLogger{log: log, development: development}
}

// MergeCompleted records a successful (possibly partial) ownership transfer.
func (a *AuditLogger) MergeCompleted(res *domain.MergeResult, clientKey string) {
	evt := a.log.Info().
		Str("action", "identity_merge").
		Str("client_key", clientKey).
		Str("auth_method", string(res.AuthMethod)).
		Str("guest_user_id", logger.RedactID(res.GuestUserID, a.development)).
		Str("auth_user_id", logger.RedactID(res.AuthUserID, a.development)).
		Int64("meal_logs_transferred", res.MealLogs).
		Int64("user_names_transferred", res.UserNames).
		Int64("subscriptions_transferred", res.Subscriptions)
	if len(res.PartialFailures) > 0 {
		evt = evt.Strs("partial_failures", res.PartialFailures)
	}
	evt.Msg("identity merge completed")
}

// MergeSkipped records the no-op case where guest and authenticated
// identifiers are identical.
func (a *AuditLogger) MergeSkipped(userID, clientKey string) {
	a.log.Info().
		Str("action", "identity_merge").
		Str("client_key", clientKey).
		Str("user_id", logger.RedactID(userID, a.development)).
		Bool("skipped", true).
		Msg("identity merge skipped")
}

// MergeRejected records an attempt that was refused before any mutation.
func (a *AuditLogger) MergeRejected(guestUserID, authUserID, clientKey, reason string) {
	a.log.Warn().
		Str("action", "identity_merge").
		Str("client_key", clientKey).
		Str("reason", reason).
		Str("guest_user_id", logger.RedactID(guestUserID, a.development)).
		Str("auth_user_id", logger.RedactID(authUserID, a.development)).
		Msg("identity merge rejected")
}

// MergeAborted records a merge that failed on the mandatory first step.
func (a *AuditLogger) MergeAborted(guestUserID, authUserID, clientKey string, err error) {
	a.log.Error().
		Err(err).
		Str("action", "identity_merge").
		Str("client_key", clientKey).
		Str("guest_user_id", logger.RedactID(guestUserID, a.development)).
		Str("auth_user_id", logger.RedactID(authUserID, a.development)).
		Msg("identity merge aborted")
}
