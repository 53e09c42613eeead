package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doCORS(t *testing.T, origins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	handler := CORS(origins, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(method, "/convert/USD/EUR", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSWildcardOrigin(t *testing.T) {
	rec := doCORS(t, []string{"*"}, http.MethodGet, "https://app.example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"), "no credentials grant with a wildcard origin")
	assert.Equal(t, "GET, POST, PUT, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSListedOriginEchoedWithCredentials(t *testing.T) {
	rec := doCORS(t, []string{"https://app.example.com"}, http.MethodGet, "https://APP.example.com")
	assert.Equal(t, "https://APP.example.com", rec.Header().Get("Access-Control-Allow-Origin"), "origin matching is case-insensitive")
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSUnlistedOriginGetsNoGrant(t *testing.T) {
	rec := doCORS(t, []string{"https://app.example.com"}, http.MethodGet, "https://evil.example.com")
	assert.Equal(t, http.StatusOK, rec.Code, "request still served, just without a grant")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	rec := doCORS(t, []string{"*"}, http.MethodOptions, "https://app.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, POST, PUT, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}
