package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/portalbase/portal-be/internal/auth"
	"github.com/portalbase/portal-be/internal/http/respond"
	"github.com/portalbase/portal-be/internal/models"
	"github.com/portalbase/portal-be/internal/storage"
)

// AdminHandler owns admin-only endpoints.
type AdminHandler struct {
	store  storage.UserStore
	gate   *auth.Gate
	logger *zap.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(store storage.UserStore, gate *auth.Gate, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{store: store, gate: gate, logger: logger}
}

// Register attaches admin routes to the mux.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/admin/users", h.handleListUsers)
}

func (h *AdminHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
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
	// Role comes from the row just read, never from the token claims.
	if err := auth.RequireRole(user, models.RoleAdmin); err != nil {
		respond.Error(w, http.StatusForbidden, "Forbidden: Admins only")
		return
	}

	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	summaries := make([]models.Summary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	respond.JSON(w, http.StatusOK, map[string]any{"users": summaries})
}
