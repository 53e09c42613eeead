package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aarushi-rai/currency-exchange-be/internal/auth"
	"github.com/aarushi-rai/currency-exchange-be/internal/currency"
	"github.com/aarushi-rai/currency-exchange-be/internal/models/dto"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage/memory"
)

// stubSource is a canned rate source for handler tests.
type stubSource struct {
	rates map[string]float64
	err   error
}

func (s *stubSource) Latest(_ context.Context, _ string, _ []string) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rates, nil
}

type testEnv struct {
	mux    *http.ServeMux
	store  *memory.Store
	authn  *auth.Authenticator
	tokens *auth.TokenManager
	source *stubSource
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	tokens := auth.NewTokenManager("secret", "exchange-test", 15*time.Minute)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authn := auth.NewAuthenticator(store, store, tokens, 24*time.Hour, 4, log)
	source := &stubSource{rates: map[string]float64{"EUR": 0.91, "JPY": 151.2}}
	svc := currency.NewService(source, store, log)

	mux := http.NewServeMux()
	NewHealthHandler(time.Now()).Register(mux)
	NewAuthHandler(authn, log).Register(mux)
	NewCurrencyHandler(svc, tokens, log).Register(mux)
	NewUsersHandler(authn, store, tokens, log).Register(mux)

	return &testEnv{mux: mux, store: store, authn: authn, tokens: tokens, source: source}
}

// do performs a request against the mux; token, when non-empty, is sent as a
// bearer credential.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin provisions a user through the API and returns the login
// response.
func (e *testEnv) registerAndLogin(t *testing.T, email, password, role string) dto.LoginResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", "", dto.RegisterRequest{Email: email, Password: password, Role: role})
	require.Equal(t, http.StatusCreated, rec.Code, "register failed: %s", rec.Body.String())

	rec = e.do(t, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())
	return decodeBody[dto.LoginResponse](t, rec)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
