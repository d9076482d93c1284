package auth

import (
	"errors"
	"net/http"

	"github.com/portalbase/portal-be/internal/models"
	"github.com/portalbase/portal-be/internal/storage"
)

// ErrNotAuthenticated means no valid session resolved for the request.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrForbidden means the session is valid but the role is insufficient.
var ErrForbidden = errors.New("forbidden")

// Gate resolves the current user for a request: cookie, token signature,
// then a fresh store read. Token claims are never returned directly, so role
// changes take effect on the next request even while old tokens are live.
type Gate struct {
	store  storage.UserStore
	tokens *TokenManager
}

// NewGate composes the token manager and user store.
func NewGate(store storage.UserStore, tokens *TokenManager) *Gate {
	return &Gate{store: store, tokens: tokens}
}

// CurrentUser returns the persisted row behind the request's session cookie,
// or ErrNotAuthenticated when the cookie is absent, the token is invalid or
// expired, or the user no longer exists.
func (g *Gate) CurrentUser(r *http.Request) (models.User, error) {
	token, ok := ReadToken(r)
	if !ok {
		return models.User{}, ErrNotAuthenticated
	}
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return models.User{}, ErrNotAuthenticated
	}
	user, err := g.store.FindByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNotAuthenticated
		}
		return models.User{}, err
	}
	return user, nil
}

// RequireRole rejects users whose persisted role differs from the required
// one. Distinct from ErrNotAuthenticated so handlers can answer 403 vs 401.
func RequireRole(user models.User, role string) error {
	if user.Role != role {
		return ErrForbidden
	}
	return nil
}
