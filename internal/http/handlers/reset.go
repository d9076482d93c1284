package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/portalbase/portal-be/internal/auth"
	"github.com/portalbase/portal-be/internal/email"
	"github.com/portalbase/portal-be/internal/http/respond"
	"github.com/portalbase/portal-be/internal/models/dto"
	"github.com/portalbase/portal-be/internal/storage"
)

// genericResetMessage is returned for every forgot-password request so the
// response never reveals whether an account exists.
const genericResetMessage = "If an account exists, an email has been sent."

// PasswordResetHandler owns the forgot/reset password pair.
type PasswordResetHandler struct {
	store      storage.UserStore
	mailer     email.Mailer
	appBaseURL string
	logger     *zap.Logger
}

// NewPasswordResetHandler constructs the handler. appBaseURL is the public
// origin reset links point at.
func NewPasswordResetHandler(store storage.UserStore, mailer email.Mailer, appBaseURL string, logger *zap.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{
		store:      store,
		mailer:     mailer,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		logger:     logger,
	}
}

// Register attaches the reset routes to the mux.
func (h *PasswordResetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/forgot-password", h.handleForgot)
	mux.HandleFunc("/reset-password", h.handleReset)
}

func (h *PasswordResetHandler) handleForgot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Message(w, http.StatusOK, genericResetMessage)
			return
		}
		h.logger.Error("forgot-password lookup", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := auth.NewResetToken()
	if err != nil {
		h.logger.Error("generate reset token", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	expires := time.Now().Add(auth.ResetTokenTTL)
	if err := h.store.SetResetToken(r.Context(), user.ID, token, expires); err != nil {
		h.logger.Error("persist reset token", zap.Int64("user_id", user.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", h.appBaseURL, token)
	if err := h.mailer.SendPasswordReset(r.Context(), user.Email, user.Name, resetURL); err != nil {
		h.logger.Error("send reset email", zap.Int64("user_id", user.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.Message(w, http.StatusOK, genericResetMessage)
}

func (h *PasswordResetHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		respond.Error(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}
	if len(req.NewPassword) < auth.MinPasswordLength {
		respond.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	err = h.store.RedeemResetToken(r.Context(), req.Token, hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}
		h.logger.Error("redeem reset token", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.Message(w, http.StatusOK, "Password updated successfully")
}
