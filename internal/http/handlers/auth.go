package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aarushi-rai/currency-exchange-be/internal/auth"
	"github.com/aarushi-rai/currency-exchange-be/internal/http/respond"
	"github.com/aarushi-rai/currency-exchange-be/internal/models/dto"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage"
)

// AuthHandler owns the registration, login, and refresh endpoints.
type AuthHandler struct {
	authn *auth.Authenticator
	log   *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authn *auth.Authenticator, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authn: authn, log: log}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
	mux.HandleFunc("POST /auth/refresh", h.handleRefresh)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateCredentials(req.Email, req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.authn.Register(r.Context(), req.Email, req.Password, "", req.Role)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "email already registered")
		default:
			h.log.Error("register user", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, dto.RegisterResponse{
		UserID: created.ID,
		Email:  created.Email,
		Role:   created.Role,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.authn.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password share this branch so the
		// response cannot reveal which check failed.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error("authenticate user", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Token:       result.Token,
		AccessToken: result.AccessToken,
		UserID:      result.UserID,
		ExpiresAt:   result.ExpiresAt,
	})
}

func (h *AuthHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		respond.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	access, err := h.authn.Refresh(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) || errors.Is(err, auth.ErrSessionExpired) {
			respond.Error(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		h.log.Error("refresh session", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	respond.JSON(w, http.StatusOK, dto.RefreshResponse{AccessToken: access})
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	if len(password) < 8 || !utf8.ValidString(password) {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
