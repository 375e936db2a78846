package handler

// mergeRequest is the JSON body of POST /v1/identity/merge. Field names
// follow the PWA client's camelCase convention.
type mergeRequest struct {
	GuestUserID   string `json:"guestUserId" validate:"required"`
	AuthUserID    string `json:"authUserId" validate:"required"`
	AdminPassword string `json:"adminPassword,omitempty"`
}

type mergeDetails struct {
	MealLogsTransferred          int64  `json:"mealLogsTransferred"`
	UserNamesTransferred         int64  `json:"userNamesTransferred"`
	PushSubscriptionsTransferred int64  `json:"pushSubscriptionsTransferred"`
	AuthUserID                   string `json:"authUserId"`
	GuestUserID                  string `json:"guestUserId"`
	AuthMethod                   string `json:"authMethod"`
}

type mergeResponse struct {
	Success bool          `json:"success"`
	Skipped bool          `json:"skipped,omitempty"`
	Message string        `json:"message,omitempty"`
	Details *mergeDetails `json:"details,omitempty"`
}
