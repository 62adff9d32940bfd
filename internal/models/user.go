package models

import "time"

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user currently holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
