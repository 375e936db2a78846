package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bitewise/meal-tracker/internal/core/domain"
	"github.com/bitewise/meal-tracker/internal/core/ports"
)

// maxListLimit caps the listing read; the calendar view never needs more.
const maxListLimit = 100

// MealHandler serves read-only meal-log listings.
type MealHandler struct {
	auth  ports.AuthValidator
	meals ports.MealLogRepository
}

func NewMealHandler(auth ports.AuthValidator, meals ports.MealLogRepository) *MealHandler {
	return &MealHandler{auth: auth, meals: meals}
}

type mealListResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Meals   []domain.MealLog `json:"meals"`
}

// List handles GET /v1/meals/:userId — returns the user's meal logs, newest
// first. Authorized for the service credential or an end-user token whose
// principal equals :userId.
//
// @Summary      List a user's meal logs
// @Tags         meals
// @Produce      json
// @Param        userId  path      string  true  "Owning user identifier"
// @Success      200     {object}  mealListResponse
// @Failure      401     {object}  errorResponse
// @Failure      429     {object}  errorResponse
// @Router       /v1/meals/{userId} [get]
func (h *MealHandler) List(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return domain.ErrInvalidIdentifiers
	}

	_, err := h.auth.Authorize(c.Request().Context(), ports.AuthInput{
		BearerToken:   bearerToken(c.Request()),
		AdminHeader:   c.Request().Header.Get(headerAdminPassword),
		ClaimedUserID: userID,
	})
	if err != nil {
		return err
	}

	logs, err := h.meals.FindByOwner(c.Request().Context(), userID, maxListLimit)
	if err != nil {
		return fmt.Errorf("list meals: %w", err)
	}

	return c.JSON(http.StatusOK, mealListResponse{
		Success: true,
		Count:   len(logs),
		Meals:   logs,
	})
}
