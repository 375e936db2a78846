package domain

import "time"

// MealLog is a single chat-logged meal entry. UserID is the owning identity:
// a client-generated guest id before sign-in, an authenticated id after a
// merge rewrites ownership.
type MealLog struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Description string    `json:"description" bson:"description"`
	Summary     string    `json:"summary,omitempty" bson:"summary,omitempty"`
	Calories    float64   `json:"calories,omitempty" bson:"calories,omitempty"`
	MealType    string    `json:"meal_type,omitempty" bson:"meal_type,omitempty"`
	AteAt       time.Time `json:"ate_at" bson:"ate_at"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
