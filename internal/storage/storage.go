package storage

import (
	"context"
	"errors"
	"time"

	"github.com/portalbase/portal-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ProfileUpdate holds the validated fields of a profile change. A nil
// PasswordHash leaves the stored hash untouched.
type ProfileUpdate struct {
	Name         string
	PasswordHash *string
}

// UserStore captures persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) error

	// SetResetToken records a pending password reset on the user row.
	SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error

	// RedeemResetToken atomically swaps the password hash and clears the
	// reset fields for the row holding a non-expired token. Returns
	// ErrNotFound when the token is unknown, expired, or already redeemed.
	RedeemResetToken(ctx context.Context, token string, passwordHash string) error
}
