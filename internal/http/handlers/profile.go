package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/portalbase/portal-be/internal/auth"
	"github.com/portalbase/portal-be/internal/http/respond"
	"github.com/portalbase/portal-be/internal/models/dto"
	"github.com/portalbase/portal-be/internal/storage"
)

// ProfileHandler owns the authenticated profile-update endpoint.
type ProfileHandler struct {
	store  storage.UserStore
	gate   *auth.Gate
	logger *zap.Logger
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(store storage.UserStore, gate *auth.Gate, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, gate: gate, logger: logger}
}

// Register attaches the profile route to the mux.
func (h *ProfileHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/user/update", h.handleUpdate)
}

func (h *ProfileHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	user, err := h.gate.CurrentUser(r)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			respond.Error(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		h.logger.Error("resolve current user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respond.Error(w, http.StatusBadRequest, "Name is required")
		return
	}

	update := storage.ProfileUpdate{Name: name}
	// A short password is silently ignored; the name still updates.
	if req.Password != nil && len(*req.Password) >= auth.MinPasswordLength {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			h.logger.Error("hash password", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		update.PasswordHash = &hash
	}

	if err := h.store.UpdateProfile(r.Context(), user.ID, update); err != nil {
		h.logger.Error("update profile", zap.Int64("user_id", user.ID), zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respond.Message(w, http.StatusOK, "Update successful")
}
