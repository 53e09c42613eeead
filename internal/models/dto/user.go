package dto

import (
	"time"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
)

type CreateProfileRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type CreateProfileResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UpdateProfileRequest uses pointers so absent fields are left untouched.
type UpdateProfileRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	Role     *string `json:"role"`
}

type UpdateProfileResponse struct {
	Success     bool        `json:"success"`
	UpdatedUser models.User `json:"updated_user"`
}
