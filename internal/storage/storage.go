package storage

import (
	"context"
	"errors"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by the service layer.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (models.User, error)
}

// UserUpdate carries optional profile changes; nil fields are left as-is.
type UserUpdate struct {
	Email    *string
	Username *string
	Role     *models.Role
}

// SessionStore persists issued session tokens. There is no delete: sessions
// terminate only by expiring, and expiry is checked when a token is presented.
type SessionStore interface {
	CreateSession(ctx context.Context, session models.SessionToken) error
	FindSession(ctx context.Context, token string) (models.SessionToken, error)
}

// HistoryStore records and lists per-user conversion lookups.
type HistoryStore interface {
	AddConversion(ctx context.Context, record models.ConversionRecord) error
	ListConversions(ctx context.Context, userID string) ([]models.ConversionRecord, error)
}
