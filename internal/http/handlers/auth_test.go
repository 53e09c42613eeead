package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/models/dto"
)

func TestRegisterLoginScenario(t *testing.T) {
	env := newTestEnv(t)

	// register("a@x.com","pw1secret","USER") succeeds with role USER.
	rec := env.do(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Email: "a@x.com", Password: "pw1secret", Role: "USER",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	registered := decodeBody[dto.RegisterResponse](t, rec)
	assert.Equal(t, models.RoleUser, registered.Role)
	assert.Equal(t, "a@x.com", registered.Email)
	assert.NotEmpty(t, registered.UserID)

	// authenticate with the right password succeeds.
	rec = env.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	loggedIn := decodeBody[dto.LoginResponse](t, rec)
	assert.Len(t, loggedIn.Token, 32)
	assert.NotEmpty(t, loggedIn.AccessToken)
	assert.Equal(t, registered.UserID, loggedIn.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), loggedIn.ExpiresAt, 5*time.Second)

	// wrong password and unknown email fail identically.
	wrongPw := env.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "a@x.com", Password: "wrongwrong"})
	unknown := env.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "b@x.com", Password: "pw1secret"})
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String(), "failure shape must not reveal which check failed")
	assert.Contains(t, wrongPw.Body.String(), "invalid credentials")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")

	rec := env.do(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Email: "A@X.com", Password: "otherpass", Role: "PREMIUM",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{Email: "", Password: "pw1secret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{Email: "a@x.com", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterBadJSON(t *testing.T) {
	env := newTestEnv(t)
	// no body at all decodes as EOF
	rec := env.do(t, http.MethodPost, "/auth/register", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterUnknownRoleDefaultsToUser(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{
		Email: "a@x.com", Password: "pw1secret", Role: "WIZARD",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	registered := decodeBody[dto.RegisterResponse](t, rec)
	assert.Equal(t, models.RoleUser, registered.Role)
}

func TestLoginTwiceYieldsDistinctValidTokens(t *testing.T) {
	env := newTestEnv(t)
	first := env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")

	rec := env.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeBody[dto.LoginResponse](t, rec)

	assert.NotEqual(t, first.Token, second.Token)

	for _, token := range []string{first.Token, second.Token} {
		rec := env.do(t, http.MethodPost, "/auth/refresh", "", dto.RefreshRequest{Token: token})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, decodeBody[dto.RefreshResponse](t, rec).AccessToken)
	}
}

func TestLoginStoreFailureIsNotACredentialError(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")

	env.store.Err = errors.New("connection refused")
	rec := env.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: "a@x.com", Password: "pw1secret"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "invalid credentials"))
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/auth/refresh", "", dto.RefreshRequest{Token: "deadbeefdeadbeefdeadbeefdeadbeef"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired session")
}

func TestRefreshRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/auth/refresh", "", dto.RefreshRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
