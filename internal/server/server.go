package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/portalbase/portal-be/internal/auth"
	"github.com/portalbase/portal-be/internal/config"
	"github.com/portalbase/portal-be/internal/email"
	"github.com/portalbase/portal-be/internal/http/handlers"
	"github.com/portalbase/portal-be/internal/middleware"
	"github.com/portalbase/portal-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.UserStore, logger *zap.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	cookies := auth.NewCookieWriter(cfg.IsProduction(), cfg.SessionTTL)
	gate := auth.NewGate(store, tokens)

	var mailer email.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = email.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		mailer = email.NewLogMailer(logger)
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, tokens, cookies, gate, logger).Register(mux)
	handlers.NewProfileHandler(store, gate, logger).Register(mux)
	handlers.NewPasswordResetHandler(store, mailer, cfg.AppBaseURL, logger).Register(mux)
	handlers.NewAdminHandler(store, gate, logger).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))

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
