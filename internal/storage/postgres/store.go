package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/portalbase/portal-be/internal/models"
	"github.com/portalbase/portal-be/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// poolIface is the slice of pgxpool.Pool the store uses; pgxmock satisfies
// it in tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides Postgres-backed persistence for users.
type Store struct {
	db   poolIface
	pool *pgxpool.Pool
}

// NewUserStore connects a pool and runs migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{db: pool, pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// NewStoreWithPool wraps an existing pool (or mock) without migrating.
func NewStoreWithPool(db poolIface) *Store {
	return &Store{db: db}
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER',
			password_hash TEXT NOT NULL,
			reset_token TEXT,
			reset_token_expires TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS reset_token TEXT;`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS reset_token_expires TIMESTAMPTZ;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_reset_token_unique_idx ON users (reset_token) WHERE reset_token IS NOT NULL;`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

const userColumns = `id, name, email, role, password_hash, reset_token, reset_token_expires, created_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (name, email, role, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + userColumns + `;`
	row := s.db.QueryRow(ctx, query, user.Name, user.Email, user.Role, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	return scanUser(s.db.QueryRow(ctx, query, id))
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return scanUser(s.db.QueryRow(ctx, query, email))
}

// ListUsers returns all users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id;`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateProfile writes the name and, when present, a new password hash.
func (s *Store) UpdateProfile(ctx context.Context, id int64, update storage.ProfileUpdate) error {
	const query = `
	UPDATE users
	SET name = $2, password_hash = COALESCE($3, password_hash)
	WHERE id = $1;`
	tag, err := s.db.Exec(ctx, query, id, update.Name, update.PasswordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// SetResetToken records a pending reset on the user row.
func (s *Store) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	const query = `
	UPDATE users
	SET reset_token = $2, reset_token_expires = $3
	WHERE id = $1;`
	tag, err := s.db.Exec(ctx, query, id, token, expires)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// RedeemResetToken consumes a reset token in a single conditional update so
// that two concurrent redemptions cannot both succeed.
func (s *Store) RedeemResetToken(ctx context.Context, token string, passwordHash string) error {
	const query = `
	UPDATE users
	SET password_hash = $2, reset_token = NULL, reset_token_expires = NULL
	WHERE reset_token = $1 AND reset_token_expires > NOW();`
	tag, err := s.db.Exec(ctx, query, token, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&user.ResetToken,
		&user.ResetTokenExpires,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
