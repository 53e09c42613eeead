package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/models/dto"
)

func strPtr(s string) *string { return &s }

func TestCreateProfile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/user", "", dto.CreateProfileRequest{
		Email: "a@x.com", Password: "pw1secret", Username: "alice", Role: "premium",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[dto.CreateProfileResponse](t, rec)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, models.RolePremium, created.Role)
	assert.NotEmpty(t, created.ID)
}

func TestCreateProfileDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")

	rec := env.do(t, http.MethodPost, "/user", "", dto.CreateProfileRequest{
		Email: "a@x.com", Password: "pw1secret", Username: "alice",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateOwnProfile(t *testing.T) {
	env := newTestEnv(t)
	login := env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")

	rec := env.do(t, http.MethodPut, "/user/"+login.UserID, login.AccessToken, dto.UpdateProfileRequest{
		Username: strPtr("alice"),
		Role:     strPtr("premium"),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[dto.UpdateProfileResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "alice", resp.UpdatedUser.Username)
	assert.Equal(t, models.RolePremium, resp.UpdatedUser.Role)
	assert.Equal(t, "a@x.com", resp.UpdatedUser.Email, "unset fields stay put")
}

func TestUpdateProfileRequiresBearer(t *testing.T) {
	env := newTestEnv(t)
	login := env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")

	rec := env.do(t, http.MethodPut, "/user/"+login.UserID, "", dto.UpdateProfileRequest{Username: strPtr("alice")})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateOtherProfileForbidden(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")
	bob := env.registerAndLogin(t, "b@x.com", "pw1secret", "USER")

	rec := env.do(t, http.MethodPut, "/user/"+alice.UserID, bob.AccessToken, dto.UpdateProfileRequest{Username: strPtr("mallory")})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminMayUpdateAnyProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")
	admin := env.registerAndLogin(t, "root@x.com", "pw1secret", "ADMIN")

	rec := env.do(t, http.MethodPut, "/user/"+alice.UserID, admin.AccessToken, dto.UpdateProfileRequest{Role: strPtr("PREMIUM")})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RolePremium, decodeBody[dto.UpdateProfileResponse](t, rec).UpdatedUser.Role)
}

func TestUpdateUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.registerAndLogin(t, "root@x.com", "pw1secret", "ADMIN")

	rec := env.do(t, http.MethodPut, "/user/no-such-id", admin.AccessToken, dto.UpdateProfileRequest{Username: strPtr("ghost")})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "a@x.com", "pw1secret", "USER")
	bob := env.registerAndLogin(t, "b@x.com", "pw1secret", "USER")

	rec := env.do(t, http.MethodPut, "/user/"+bob.UserID, bob.AccessToken, dto.UpdateProfileRequest{Email: strPtr("a@x.com")})
	assert.Equal(t, http.StatusConflict, rec.Code)
}
