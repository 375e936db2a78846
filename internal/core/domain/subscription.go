package domain

import "time"

// PushSubscription is a Web Push subscription registered by the PWA client.
// Delivery is handled elsewhere; this subsystem only transfers ownership.
type PushSubscription struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Endpoint  string    `json:"endpoint" bson:"endpoint"`
	P256dh    string    `json:"p256dh" bson:"p256dh"`
	Auth      string    `json:"auth" bson:"auth"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
