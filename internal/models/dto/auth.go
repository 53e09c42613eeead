package dto

import (
	"time"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the persisted session token plus a short-lived
// access token for bearer-authenticated endpoints.
type LoginResponse struct {
	Token       string    `json:"token"`
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type RefreshRequest struct {
	Token string `json:"token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
