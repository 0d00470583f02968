package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashaarshad/smart-recycle-nexus-99/internal/common"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/models"
	"github.com/pashaarshad/smart-recycle-nexus-99/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(t *testing.T, s store.Store) *Manager {
	t.Helper()
	m := NewManager(s, nil)
	m.now = func() time.Time { return fixedNow }
	n := 0
	m.newID = func() string { n++; return fmt.Sprintf("user-%d", n) }
	return m
}

func register(t *testing.T, m *Manager, email, password string) *models.User {
	t.Helper()
	u, err := m.Register(context.Background(), models.RegisterData{
		Name: "Test", Email: email, Password: password, Phone: "555", Address: "Main st",
	})
	require.NoError(t, err)
	return u
}

func TestRegister_CreatesNonAdminWithZeroPointsAndNoSession(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())

	u := register(t, m, "a@x.com", "pw")

	assert.Equal(t, "user-1", u.ID)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, 0, u.Points)
	assert.Equal(t, fixedNow, u.CreatedAt)

	_, ok := m.Current()
	assert.False(t, ok, "register must not log in")
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())
	register(t, m, "a@x.com", "pw")

	tests := []models.RegisterData{
		{Name: "Other", Email: "a@x.com", Password: "different"},
		{Name: "", Email: "a@x.com", Password: "pw", Phone: "1", Address: "2"},
	}
	for _, data := range tests {
		_, err := m.Register(context.Background(), data)
		require.ErrorIs(t, err, common.ErrEmailTaken)
	}
}

func TestRegister_EmailMatchIsCaseSensitive(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())
	register(t, m, "a@x.com", "pw")

	_, err := m.Register(context.Background(), models.RegisterData{Email: "A@x.com", Password: "pw"})
	require.NoError(t, err)
}

func TestRegister_BlankFieldsRejected(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())

	_, err := m.Register(context.Background(), models.RegisterData{Email: "  ", Password: "pw"})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = m.Register(context.Background(), models.RegisterData{Email: "a@x.com"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email and password are required")
}

func TestLogin_AdminShortcutIgnoresDirectory(t *testing.T) {
	s := store.NewMemoryStore()
	m := newTestManager(t, s)
	// a directory user with the admin email must not shadow the admin identity
	register(t, m, AdminEmail, "other")

	u, err := m.Login(context.Background(), AdminEmail, AdminPassword)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.Equal(t, 0, u.Points)
	assert.Equal(t, AdminID, u.ID)

	cur, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, u, cur)

	users, err := store.NewRecords(nil).Directory(context.Background(), s)
	require.NoError(t, err)
	for _, ru := range users {
		assert.NotEqual(t, AdminID, ru.ID, "admin never stored in the directory")
	}
}

func TestLogin_DirectoryUser(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())
	reg := register(t, m, "a@x.com", "pw")

	u, err := m.Login(context.Background(), "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
	assert.False(t, u.IsAdmin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())
	register(t, m, "a@x.com", "pw")

	for _, c := range [][2]string{{"a@x.com", "wrong"}, {"b@x.com", "pw"}, {AdminEmail, "admin"}} {
		_, err := m.Login(context.Background(), c[0], c[1])
		require.ErrorIs(t, err, common.ErrInvalidCredentials, c)
	}

	_, ok := m.Current()
	assert.False(t, ok)
}

func TestSession_SurvivesRestartAndLogoutClearsIt(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	m := newTestManager(t, s)
	register(t, m, "a@x.com", "pw")
	_, err := m.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	restarted := newTestManager(t, s)
	u, err := restarted.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "a@x.com", u.Email)

	require.NoError(t, restarted.Logout(ctx))
	require.NoError(t, restarted.Logout(ctx), "logout is idempotent")

	again := newTestManager(t, s)
	u, err = again.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	_, ok := again.Current()
	assert.False(t, ok)
}

func TestUpdatePoints(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	m := newTestManager(t, s)

	require.ErrorIs(t, m.UpdatePoints(ctx, 10), common.ErrNotAuthenticated)

	register(t, m, "a@x.com", "pw")
	_, err := m.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	require.NoError(t, m.UpdatePoints(ctx, 600))
	cur, _ := m.Current()
	assert.Equal(t, 600, cur.Points)

	stored, err := store.NewRecords(nil).SessionUser(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 600, stored.Points)

	require.ErrorIs(t, m.UpdatePoints(ctx, -1), common.ErrInvalidAmount)
	cur, _ = m.Current()
	assert.Equal(t, 600, cur.Points)
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	m := newTestManager(t, store.NewMemoryStore())
	_, err := m.Login(context.Background(), AdminEmail, AdminPassword)
	require.NoError(t, err)

	cur, _ := m.Current()
	cur.Points = 999

	again, _ := m.Current()
	assert.Equal(t, 0, again.Points)
}

func TestSession_OnSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	m := newTestManager(t, s)
	register(t, m, "a@x.com", "pw")
	_, err = m.Register(ctx, models.RegisterData{Email: "a@x.com", Password: "x"})
	require.ErrorIs(t, err, common.ErrEmailTaken)

	_, err = m.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	u, err := newTestManager(t, s).Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "user-1", u.ID)
}
