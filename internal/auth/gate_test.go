package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalbase/portal-be/internal/models"
	"github.com/portalbase/portal-be/internal/storage"
)

// stubStore serves a fixed set of users for gate tests.
type stubStore struct {
	users map[int64]models.User
}

func (s *stubStore) FindByID(_ context.Context, id int64) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *stubStore) CreateUser(context.Context, models.User) (models.User, error) {
	return models.User{}, nil
}
func (s *stubStore) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, storage.ErrNotFound
}
func (s *stubStore) ListUsers(context.Context) ([]models.User, error) { return nil, nil }
func (s *stubStore) UpdateProfile(context.Context, int64, storage.ProfileUpdate) error {
	return nil
}
func (s *stubStore) SetResetToken(context.Context, int64, string, time.Time) error { return nil }
func (s *stubStore) RedeemResetToken(context.Context, string, string) error        { return nil }

func requestWithToken(t *testing.T, token string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	return r
}

func TestGate_CurrentUser(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("gate-secret", time.Hour)
	store := &stubStore{users: map[int64]models.User{
		1: {ID: 1, Name: "Alice", Email: "a@b.com", Role: models.RoleUser},
	}}
	gate := NewGate(store, tm)

	token, err := tm.Mint(store.users[1])
	require.NoError(t, err)

	user, err := gate.CurrentUser(requestWithToken(t, token))
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestGate_CurrentUser_NoCookie(t *testing.T) {
	t.Parallel()

	gate := NewGate(&stubStore{}, NewTokenManager("gate-secret", time.Hour))
	_, err := gate.CurrentUser(requestWithToken(t, ""))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGate_CurrentUser_InvalidToken(t *testing.T) {
	t.Parallel()

	gate := NewGate(&stubStore{}, NewTokenManager("gate-secret", time.Hour))
	_, err := gate.CurrentUser(requestWithToken(t, "garbage"))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGate_CurrentUser_DeletedUser(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("gate-secret", time.Hour)
	gate := NewGate(&stubStore{users: map[int64]models.User{}}, tm)

	token, err := tm.Mint(models.User{ID: 99, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = gate.CurrentUser(requestWithToken(t, token))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// A token minted before a role change must yield the fresh role, not the one
// embedded in the claims.
func TestGate_CurrentUser_FreshRoleWins(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("gate-secret", time.Hour)
	store := &stubStore{users: map[int64]models.User{
		1: {ID: 1, Role: models.RoleUser},
	}}
	gate := NewGate(store, tm)

	token, err := tm.Mint(models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	user, err := gate.CurrentUser(requestWithToken(t, token))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Error(t, RequireRole(user, models.RoleAdmin))
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	admin := models.User{Role: models.RoleAdmin}
	user := models.User{Role: models.RoleUser}

	assert.NoError(t, RequireRole(admin, models.RoleAdmin))
	assert.ErrorIs(t, RequireRole(user, models.RoleAdmin), ErrForbidden)
}
