package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/internal/core/ports"
)

const defaultStaleness = 30 * 24 * time.Hour

// ownerStore is the common transfer surface of the three record stores.
type ownerStore interface {
	ReassignOwner(ctx context.Context, fromUserID, toUserID string) error
	CountByOwner(ctx context.Context, userID string) (int64, error)
}

type mergeService struct {
	meals     ports.MealLogRepository
	profiles  ports.ProfileRepository
	subs      ports.SubscriptionRepository
	staleness time.Duration
	audit     *AuditLogger
	log       zerolog.Logger
}

// NewMergeService returns a MergeService implementing the saga-style
// migration: the meal-log step is mandatory, the profile and subscription
// steps are tolerated on failure. staleness <= 0 falls back to 30 days.
func NewMergeService(
	meals ports.MealLogRepository,
	profiles ports.ProfileRepository,
	subs ports.SubscriptionRepository,
	staleness time.Duration,
	audit *AuditLogger,
	log zerolog.Logger,
) ports.MergeService {
	if staleness <= 0 {
		staleness = defaultStaleness
	}
	return &mergeService{
		meals:     meals,
		profiles:  profiles,
		subs:      subs,
		staleness: staleness,
		audit:     audit,
		log:       log,
	}
}

// Merge transfers ownership of all guest-owned records to the authenticated
// identity. Every mutating step is an unconditional update filtered on the
// guest owner, so re-invoking a completed merge matches zero rows instead of
// failing.
func (s *mergeService) Merge(ctx context.Context, in ports.MergeInput) (*domain.MergeResult, error) {
	// 1. Identical identifiers: nothing to transfer, touch no store.
	if in.GuestUserID == in.AuthUserID {
		s.audit.MergeSkipped(in.AuthUserID, in.ClientKey)
		return domain.SkippedMerge(in.AuthUserID), nil
	}

	// 2. Staleness guard, end-user path only. The service-credential path is
	//    trusted unconditionally.
	if !in.Auth.IsAdmin() {
		if err := s.checkStaleness(ctx, in.GuestUserID); err != nil {
			s.audit.MergeRejected(in.GuestUserID, in.AuthUserID, in.ClientKey, "stale_guest_data")
			return nil, err
		}
	}

	res := &domain.MergeResult{
		GuestUserID: in.GuestUserID,
		AuthUserID:  in.AuthUserID,
		AuthMethod:  in.Auth.Method,
	}

	// 3. Meal logs — mandatory. Any failure aborts the whole operation; no
	//    prior mutation exists to roll back.
	count, err := s.transfer(ctx, s.meals, in.GuestUserID, in.AuthUserID)
	if err != nil {
		s.audit.MergeAborted(in.GuestUserID, in.AuthUserID, in.ClientKey, err)
		return nil, fmt.Errorf("%w: meal logs: %v", domain.ErrMergeFailed, err)
	}
	res.MealLogs = count

	// 4. Profiles — tolerated. Once the mandatory step has succeeded the
	//    operation is committed to reporting success.
	if count, err = s.transfer(ctx, s.profiles, in.GuestUserID, in.AuthUserID); err != nil {
		s.log.Warn().Err(err).Str("store", "user_profiles").Msg("optional merge step failed")
		res.PartialFailures = append(res.PartialFailures, "user_profiles")
	} else {
		res.UserNames = count
	}

	// 5. Push subscriptions — tolerated, same policy as profiles.
	if count, err = s.transfer(ctx, s.subs, in.GuestUserID, in.AuthUserID); err != nil {
		s.log.Warn().Err(err).Str("store", "push_subscriptions").Msg("optional merge step failed")
		res.PartialFailures = append(res.PartialFailures, "push_subscriptions")
	} else {
		res.Subscriptions = count
	}

	s.audit.MergeCompleted(res, in.ClientKey)
	return res, nil
}

// transfer moves ownership of one store's records. The transferred count is
// an authoritative read of the rows matching the guest filter taken just
// before the update; affected-row counts from the update itself are never
// trusted, and a re-run therefore reports zero.
func (s *mergeService) transfer(ctx context.Context, store ownerStore, fromUserID, toUserID string) (int64, error) {
	count, err := store.CountByOwner(ctx, fromUserID)
	if err != nil {
		return 0, fmt.Errorf("count by owner: %w", err)
	}
	if err := store.ReassignOwner(ctx, fromUserID, toUserID); err != nil {
		return 0, fmt.Errorf("reassign owner: %w", err)
	}
	return count, nil
}

// checkStaleness rejects merges of guest data whose most recent activity is
// older than the staleness window. A guest with no activity at all passes
// vacuously: there is nothing to protect.
func (s *mergeService) checkStaleness(ctx context.Context, guestUserID string) error {
	latest, ok, err := s.meals.LatestActivity(ctx, guestUserID)
	if err != nil {
		return fmt.Errorf("staleness check: %w", err)
	}
	if !ok {
		return nil
	}
	if time.Since(latest) > s.staleness {
		return domain.ErrStaleGuestData
	}
	return nil
}
