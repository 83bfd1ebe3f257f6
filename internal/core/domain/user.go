package domain

import "time"

// User is a registered spotter account. Email is the identity key: exactly
// one User exists per email, enforced by a unique index at the store level.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	ProfileImagePath string    `json:"profileImage,omitempty"`
	NumberOfPlanes   int64     `json:"numberOfPlanes"`
	CreatedAt        time.Time `json:"created_at"`
}
