package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two causes stay distinct internally for logging, never externally.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSession indicates a session token the store does not know.
	ErrInvalidSession = errors.New("invalid session token")

	// ErrSessionExpired indicates a known session past its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// LoginResult is the outcome of a successful authentication: the persisted
// session token plus a short-lived access token.
type LoginResult struct {
	Token       string
	AccessToken string
	UserID      string
	ExpiresAt   time.Time
}

// Authenticator orchestrates lookup, password verification, token issuance,
// and session persistence. It holds no mutable state of its own; the stores
// are the only shared resource.
type Authenticator struct {
	users      storage.UserStore
	sessions   storage.SessionStore
	tokens     *TokenManager
	sessionTTL time.Duration
	bcryptCost int
	log        *slog.Logger
	now        func() time.Time
}

// NewAuthenticator wires the authenticator with injected stores.
func NewAuthenticator(users storage.UserStore, sessions storage.SessionStore, tokens *TokenManager, sessionTTL time.Duration, bcryptCost int, log *slog.Logger) *Authenticator {
	return &Authenticator{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
	}
}

// NormalizeEmail trims and lowercases an email address. Emails are stored
// and compared in this canonical form, so matching is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password. The role string is
// parsed against the closed role set, defaulting to USER. A duplicate email
// surfaces as storage.ErrAlreadyExists.
func (a *Authenticator) Register(ctx context.Context, email, password, username, role string) (models.User, error) {
	hash, err := HashPassword(password, a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		Username:     strings.TrimSpace(username),
		PasswordHash: hash,
		Role:         models.ParseRole(role),
	}
	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	a.log.Info("user registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Authenticate verifies the credentials and issues a new session. It is
// deliberately not idempotent: every successful call inserts a fresh session
// row, so repeated logins accumulate live sessions for the user.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := a.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.log.Debug("login rejected", "cause", "unknown email")
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		a.log.Debug("login rejected", "cause", "password mismatch", "user_id", user.ID)
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := NewSessionToken()
	if err != nil {
		return LoginResult{}, err
	}
	expiresAt := a.now().Add(a.sessionTTL)
	session := models.SessionToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}
	if err := a.sessions.CreateSession(ctx, session); err != nil {
		return LoginResult{}, err
	}

	access, err := a.tokens.Generate(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate access token: %w", err)
	}

	a.log.Info("session issued", "user_id", user.ID, "expires_at", expiresAt)
	return LoginResult{
		Token:       token,
		AccessToken: access,
		UserID:      user.ID,
		ExpiresAt:   expiresAt,
	}, nil
}

// Refresh exchanges a live session token for a fresh access token. Expiry is
// enforced here, at validation time; expired rows are left in place.
func (a *Authenticator) Refresh(ctx context.Context, token string) (string, error) {
	session, err := a.sessions.FindSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	if session.Expired(a.now()) {
		return "", ErrSessionExpired
	}
	user, err := a.users.FindByID(ctx, session.UserID)
	if err != nil {
		return "", err
	}
	return a.tokens.Generate(user)
}
