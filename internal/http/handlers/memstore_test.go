package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/portalbase/portal-be/internal/models"
	"github.com/portalbase/portal-be/internal/storage"
)

// memStore is an in-memory storage.UserStore for handler tests. Redemption
// mirrors the production store's single conditional update: check and clear
// happen under one lock.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

var _ storage.UserStore = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{nextID: 1, users: map[int64]*models.User{}}
}

func (m *memStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	m.users[user.ID] = &user
	return user, nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return *user, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			return *user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memStore) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for id := int64(1); id < m.nextID; id++ {
		if user, ok := m.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (m *memStore) UpdateProfile(_ context.Context, id int64, update storage.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.Name = update.Name
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	return nil
}

func (m *memStore) SetResetToken(_ context.Context, id int64, token string, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.ResetToken = &token
	user.ResetTokenExpires = &expires
	return nil
}

func (m *memStore) RedeemResetToken(_ context.Context, token string, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ResetToken != nil && *user.ResetToken == token &&
			user.ResetTokenExpires != nil && user.ResetTokenExpires.After(time.Now()) {
			user.PasswordHash = passwordHash
			user.ResetToken = nil
			user.ResetTokenExpires = nil
			return nil
		}
	}
	return storage.ErrNotFound
}

// captureMailer records reset emails instead of sending them.
type captureMailer struct {
	mu   sync.Mutex
	sent []capturedEmail
}

type capturedEmail struct {
	To       string
	Name     string
	ResetURL string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, to, name, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, capturedEmail{To: to, Name: name, ResetURL: resetURL})
	return nil
}

func (m *captureMailer) all() []capturedEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]capturedEmail(nil), m.sent...)
}
