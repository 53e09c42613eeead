package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aarushi-rai/currency-exchange-be/internal/auth"
	"github.com/aarushi-rai/currency-exchange-be/internal/config"
	"github.com/aarushi-rai/currency-exchange-be/internal/currency"
	"github.com/aarushi-rai/currency-exchange-be/internal/http/handlers"
	"github.com/aarushi-rai/currency-exchange-be/internal/middleware"
	"github.com/aarushi-rai/currency-exchange-be/internal/rates"
	"github.com/aarushi-rai/currency-exchange-be/internal/storage"
)

// Stores bundles the persistence interfaces the server depends on. The
// Postgres store satisfies all three.
type Stores struct {
	Users    storage.UserStore
	Sessions storage.SessionStore
	History  storage.HistoryStore
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, log *slog.Logger, stores Stores, source rates.Source) *Server {
	mux := http.NewServeMux()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authn := auth.NewAuthenticator(stores.Users, stores.Sessions, tokens, cfg.SessionTTL, cfg.BcryptCost, log)
	converter := currency.NewService(source, stores.History, log)

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(authn, log).Register(mux)
	handlers.NewCurrencyHandler(converter, tokens, log).Register(mux)
	handlers.NewUsersHandler(authn, stores.Users, tokens, log).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
