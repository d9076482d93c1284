package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/portalbase/portal-be/internal/auth"
	"github.com/portalbase/portal-be/internal/http/respond"
	"github.com/portalbase/portal-be/internal/models"
	"github.com/portalbase/portal-be/internal/models/dto"
	"github.com/portalbase/portal-be/internal/storage"
)

// AuthHandler owns the session lifecycle endpoints: register, login, logout,
// and the current-user probe.
type AuthHandler struct {
	store   storage.UserStore
	tokens  *auth.TokenManager
	cookies *auth.CookieWriter
	gate    *auth.Gate
	logger  *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, cookies *auth.CookieWriter, gate *auth.Gate, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, cookies: cookies, gate: gate, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/me", h.handleMe)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Name)
	emailAddr := strings.TrimSpace(req.Email)
	if name == "" || emailAddr == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		respond.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Name:         name,
		Email:        emailAddr,
		Role:         models.RoleUser,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		h.logger.Error("create user", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    created.Summary(),
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.store.FindByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login lookup", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respond.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Mint(user)
	if err != nil {
		h.logger.Error("mint session token", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.cookies.Attach(w, token)
	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		User:    user.Summary(),
	})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.cookies.Clear(w)
	respond.Message(w, http.StatusOK, "Logged out")
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
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
	respond.JSON(w, http.StatusOK, map[string]any{"user": user.Summary()})
}
