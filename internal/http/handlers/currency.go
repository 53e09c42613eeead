package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aarushi-rai/currency-exchange-be/internal/auth"
	"github.com/aarushi-rai/currency-exchange-be/internal/currency"
	"github.com/aarushi-rai/currency-exchange-be/internal/http/respond"
	"github.com/aarushi-rai/currency-exchange-be/internal/middleware"
	"github.com/aarushi-rai/currency-exchange-be/internal/models"
	"github.com/aarushi-rai/currency-exchange-be/internal/models/dto"
	"github.com/aarushi-rai/currency-exchange-be/internal/rates"
)

// CurrencyHandler owns the conversion and history endpoints.
type CurrencyHandler struct {
	svc    *currency.Service
	tokens *auth.TokenManager
	log    *slog.Logger
}

// NewCurrencyHandler constructs the handler.
func NewCurrencyHandler(svc *currency.Service, tokens *auth.TokenManager, log *slog.Logger) *CurrencyHandler {
	return &CurrencyHandler{svc: svc, tokens: tokens, log: log}
}

// Register attaches currency routes. Conversion is public (an optional
// bearer token enables history recording); history requires one.
func (h *CurrencyHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /convert/{base}/{targets}", middleware.OptionalAuth(h.tokens, http.HandlerFunc(h.handleConvert)))
	mux.HandleFunc("POST /batch_convert", h.handleBatchConvert)
	mux.Handle("GET /user/history", middleware.RequireAuth(h.tokens, http.HandlerFunc(h.handleHistory)))
}

func (h *CurrencyHandler) handleConvert(w http.ResponseWriter, r *http.Request) {
	base := r.PathValue("base")
	targets := currency.ParseTargets(r.PathValue("targets"))
	if strings.TrimSpace(base) == "" || len(targets) == 0 {
		respond.Error(w, http.StatusBadRequest, "base and target currencies are required")
		return
	}

	var userID string
	if claims, ok := middleware.Identity(r.Context()); ok {
		userID = claims.UserID
	}

	resp, err := h.svc.Convert(r.Context(), userID, base, targets)
	if err != nil {
		h.respondConversionError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *CurrencyHandler) handleBatchConvert(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.BaseCurrency) == "" || len(req.TargetCurrencies) == 0 {
		respond.Error(w, http.StatusBadRequest, "base_currency and target_currencies are required")
		return
	}

	resp, err := h.svc.BatchConvert(r.Context(), req.BaseCurrency, req.TargetCurrencies)
	if err != nil {
		h.respondConversionError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *CurrencyHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		userID = claims.UserID
	}
	if userID != claims.UserID && claims.Role != models.RoleAdmin {
		respond.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	resp, err := h.svc.History(r.Context(), userID)
	if err != nil {
		h.log.Error("list history", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *CurrencyHandler) respondConversionError(w http.ResponseWriter, err error) {
	if errors.Is(err, rates.ErrUnavailable) {
		respond.Error(w, http.StatusBadGateway, "exchange rate source unavailable")
		return
	}
	h.log.Error("conversion failed", "error", err)
	respond.Error(w, http.StatusInternalServerError, "internal error")
}
