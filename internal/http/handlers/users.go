package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aarushi-rai/currency-exchange-be/internal/auth"
	"github.com/aarushi-rai/currency-exchange-be/internal/http/respond"
	"github.com/aarushi-rai/currency-exchange-be/internal/middleware"
	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/models/dto"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage"
)

// UsersHandler owns the thin profile endpoints: create and update.
type UsersHandler struct {
	authn  *auth.Authenticator
	store  storage.UserStore
	tokens *auth.TokenManager
	log    *slog.Logger
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(authn *auth.Authenticator, store storage.UserStore, tokens *auth.TokenManager, log *slog.Logger) *UsersHandler {
	return &UsersHandler{authn: authn, store: store, tokens: tokens, log: log}
}

// Register attaches profile routes. Updates require a bearer token.
func (h *UsersHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /user", h.handleCreate)
	mux.Handle("PUT /user/{id}", middleware.RequireAuth(h.tokens, http.HandlerFunc(h.handleUpdate)))
}

func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateCredentials(req.Email, req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.authn.Register(r.Context(), req.Email, req.Password, req.Username, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "email already registered")
		default:
			h.log.Error("create profile", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, dto.CreateProfileResponse{
		ID:        created.ID,
		Email:     created.Email,
		Username:  created.Username,
		Role:      created.Role,
		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	})
}

func (h *UsersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	id := r.PathValue("id")
	if claims.UserID != id && claims.Role != models.RoleAdmin {
		respond.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	upd := storage.UserUpdate{Username: trimmedOrNil(req.Username)}
	if req.Email != nil {
		email := auth.NormalizeEmail(*req.Email)
		if email == "" {
			respond.Error(w, http.StatusBadRequest, "email must not be empty")
			return
		}
		upd.Email = &email
	}
	if req.Role != nil {
		role := models.ParseRole(*req.Role)
		upd.Role = &role
	}

	updated, err := h.store.UpdateUser(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusConflict, "email already registered")
		default:
			h.log.Error("update profile", "user_id", id, "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.UpdateProfileResponse{Success: true, UpdatedUser: updated})
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
