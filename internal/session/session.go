// Package session owns authentication and the active session.
//
// The Manager resolves logins (fixed admin pair first, then the registered
// directory), registers new users, restores a stored session on start-up and
// persists every change through the store before returning.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/logging"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/store"
)

// Admin identity. It is synthesized on login and never stored in the directory.
const (
	AdminEmail    = "admin@gmail.com"
	AdminPassword = "ADMIN"
	AdminID       = "1"
	AdminName     = "Admin"
)

// Manager is safe for concurrent use.
type Manager struct {
	store   store.Store
	records *store.Records
	log     logging.Logger

	now   func() time.Time
	newID func() string

	mu      sync.RWMutex
	current *models.User
}

func NewManager(s store.Store, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		store:   s,
		records: store.NewRecords(log),
		log:     log.With("component", "session"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Current returns a copy of the active user.
func (m *Manager) Current() (*models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil, false
	}
	return m.current.Clone(), true
}

// Restore adopts a stored session without re-checking credentials.
// It returns nil when no session is stored.
func (m *Manager) Restore(ctx context.Context) (*models.User, error) {
	u, err := m.records.SessionUser(ctx, m.store)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = u.Clone()
	m.mu.Unlock()

	if u != nil {
		m.log.Info(ctx, "session restored", "user_id", u.ID, "admin", u.IsAdmin)
	} else {
		m.log.Debug(ctx, "no stored session")
	}
	return u, nil
}

func (m *Manager) adminUser() *models.User {
	return &models.User{
		ID:        AdminID,
		Email:     AdminEmail,
		Name:      AdminName,
		IsAdmin:   true,
		Points:    0,
		CreatedAt: m.now(),
	}
}

// Login resolves credentials and persists the result as the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user *models.User

	err := m.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		if email == AdminEmail && password == AdminPassword {
			user = m.adminUser()
		} else {
			users, err := m.records.Directory(ctx, kv)
			if err != nil {
				return err
			}
			for _, ru := range users {
				if ru.Email == email && ru.Password == password {
					u := ru.User
					u.IsAdmin = false
					user = &u
					break
				}
			}
		}
		if user == nil {
			return common.ErrInvalidCredentials
		}
		return m.records.SaveSessionUser(ctx, kv, user)
	})
	if err != nil {
		m.log.Info(ctx, "login failed", "email", email, "error", err)
		return nil, err
	}

	m.mu.Lock()
	m.current = user.Clone()
	m.mu.Unlock()

	m.log.Info(ctx, "login", "user_id", user.ID, "admin", user.IsAdmin)
	return user, nil
}

// Register appends a new non-admin user to the directory. It does not log in.
func (m *Manager) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	if strings.TrimSpace(data.Email) == "" || data.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	var user *models.User

	err := m.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		users, err := m.records.Directory(ctx, kv)
		if err != nil {
			return err
		}
		for _, ru := range users {
			if ru.Email == data.Email {
				return common.ErrEmailTaken
			}
		}

		ru := models.RegisteredUser{
			User: models.User{
				ID:        m.newID(),
				Email:     data.Email,
				Name:      data.Name,
				Phone:     data.Phone,
				Address:   data.Address,
				Points:    0,
				CreatedAt: m.now(),
			},
			Password: data.Password,
		}
		users = append(users, ru)
		if err := m.records.SaveDirectory(ctx, kv, users); err != nil {
			return err
		}
		user = ru.User.Clone()
		return nil
	})
	if err != nil {
		m.log.Info(ctx, "registration rejected", "email", data.Email, "error", err)
		return nil, err
	}

	m.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Logout removes the stored session. Calling it without a session is fine.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		return m.records.ClearSessionUser(ctx, kv)
	}); err != nil {
		return err
	}

	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.mu.Unlock()

	if prev != nil {
		m.log.Info(ctx, "logout", "user_id", prev.ID)
	}
	return nil
}

// UpdatePoints overwrites the active user's balance and persists the session.
func (m *Manager) UpdatePoints(ctx context.Context, points int) error {
	if points < 0 {
		return common.ErrInvalidAmount
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return common.ErrNotAuthenticated
	}

	updated := m.current.Clone()
	updated.Points = points

	if err := m.store.Update(ctx, func(ctx context.Context, kv store.KV) error {
		return m.records.SaveSessionUser(ctx, kv, updated)
	}); err != nil {
		return err
	}

	m.current = updated
	m.log.Debug(ctx, "session points updated", "user_id", updated.ID, "points", points)
	return nil
}
