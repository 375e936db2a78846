package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bitewise/meal-tracker/internal/api/metrics"
	"github.com/bitewise/meal-tracker/internal/api/middleware"
	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/internal/core/ports"
)

const headerAdminPassword = "X-Admin-Password"

// MergeHandler handles guest-to-authenticated identity merges.
type MergeHandler struct {
	auth   ports.AuthValidator
	merger ports.MergeService
}

func NewMergeHandler(auth ports.AuthValidator, merger ports.MergeService) *MergeHandler {
	return &MergeHandler{auth: auth, merger: merger}
}

// Merge handles POST /v1/identity/merge — transfers ownership of all
// guest-owned records to the authenticated identity.
//
// @Summary      Merge a guest identity into an authenticated account
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      mergeRequest  true  "Guest and authenticated identifiers"
// @Success      200   {object}  mergeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/identity/merge [post]
func (h *MergeHandler) Merge(c echo.Context) error {
	start := time.Now()

	var req mergeRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidIdentifiers
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidIdentifiers
	}

	clientKey := ctxClientKey(c)

	// Identical identifiers: nothing to merge. Short-circuits before any
	// authentication or store work.
	if req.GuestUserID == req.AuthUserID {
		res, err := h.merger.Merge(c.Request().Context(), ports.MergeInput{
			GuestUserID: req.GuestUserID,
			AuthUserID:  req.AuthUserID,
			ClientKey:   clientKey,
		})
		if err != nil {
			return err
		}
		metrics.MergesTotal.WithLabelValues("none", "skipped").Inc()
		metrics.MergeDuration.WithLabelValues("skipped").Observe(time.Since(start).Seconds())
		return c.JSON(http.StatusOK, mergeResponse{Success: true, Skipped: res.Skipped})
	}

	authz, err := h.auth.Authorize(c.Request().Context(), ports.AuthInput{
		BearerToken:   bearerToken(c.Request()),
		AdminHeader:   c.Request().Header.Get(headerAdminPassword),
		AdminBody:     req.AdminPassword,
		ClaimedUserID: req.AuthUserID,
	})
	if err != nil {
		metrics.MergesTotal.WithLabelValues("none", "rejected").Inc()
		return err
	}

	res, err := h.merger.Merge(c.Request().Context(), ports.MergeInput{
		GuestUserID: req.GuestUserID,
		AuthUserID:  req.AuthUserID,
		Auth:        authz,
		ClientKey:   clientKey,
	})
	if err != nil {
		outcome := "failed"
		if errors.Is(err, domain.ErrStaleGuestData) {
			outcome = "rejected"
		}
		metrics.MergesTotal.WithLabelValues(string(authz.Method), outcome).Inc()
		metrics.MergeDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}

	metrics.MergesTotal.WithLabelValues(string(authz.Method), "success").Inc()
	metrics.MergeRecordsTransferred.WithLabelValues("meal_logs").Add(float64(res.MealLogs))
	metrics.MergeRecordsTransferred.WithLabelValues("user_profiles").Add(float64(res.UserNames))
	metrics.MergeRecordsTransferred.WithLabelValues("push_subscriptions").Add(float64(res.Subscriptions))
	metrics.MergeDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, mergeResponse{
		Success: true,
		Message: "guest data merged",
		Details: &mergeDetails{
			MealLogsTransferred:          res.MealLogs,
			UserNamesTransferred:         res.UserNames,
			PushSubscriptionsTransferred: res.Subscriptions,
			AuthUserID:                   res.AuthUserID,
			GuestUserID:                  res.GuestUserID,
			AuthMethod:                   string(res.AuthMethod),
		},
	})
}

// bearerToken extracts the Authorization bearer token, empty when absent or
// malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ctxClientKey returns the client key derived by the rate-limit middleware,
// deriving it directly when the route carries no limiter.
func ctxClientKey(c echo.Context) string {
	if key, _ := c.Get(middleware.ContextClientKey).(string); key != "" {
		return key
	}
	return middleware.ClientKey(c.Request())
}
