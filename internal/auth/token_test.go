package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portalbase/portal-be/internal/models"
)

func TestTokenManager_MintAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)
	user := models.User{ID: 42, Role: models.RoleAdmin}

	token, err := tm.Mint(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", -1*time.Minute)
	token, err := tm.Mint(models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	minted := NewTokenManager("right-secret", time.Hour)
	token, err := minted.Mint(models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)

	verifier := NewTokenManager("wrong-secret", time.Hour)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
