package dto

import "github.com/hongminglow/task-tracker/internal/models"

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	SecretKey string `json:"secretKey"`
	// LegacySecretKey accepts the capitalised field older clients send.
	LegacySecretKey string `json:"SecretKey"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

// UpdateProfileRequest lists the profile fields a user may change about themselves.
type UpdateProfileRequest struct {
	Email *string `json:"email"`
}

type ProfileResponse struct {
	Message string      `json:"message,omitempty"`
	User    models.User `json:"user"`
}

type VerifyTokenResponse struct {
	Valid     bool        `json:"valid"`
	User      models.User `json:"user"`
	TokenData any         `json:"tokenData"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
