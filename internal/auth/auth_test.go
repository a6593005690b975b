package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badrsabra/clinicpro/internal/config"
	"github.com/badrsabra/clinicpro/internal/events"
	"github.com/badrsabra/clinicpro/internal/notify"
	"github.com/badrsabra/clinicpro/internal/storage"
	"github.com/badrsabra/clinicpro/internal/store"
	"github.com/badrsabra/clinicpro/internal/testutil"
)

var authStart = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db      *store.DB
	clock   *testutil.ManualClock
	manager *Manager
	userID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := testutil.NewManualClock(authStart)
	ids := testutil.NewIDSequence()
	db, err := store.New(storage.NewMemory(), store.Options{
		Bus:   events.NewBus(),
		Clock: clk,
		NewID: ids.Next,
	})
	require.NoError(t, err)

	sec := config.Default().Security
	manager := NewManager(db, notify.NewService(db), sec)

	hash, err := HashPassword("Secret#99")
	require.NoError(t, err)
	created := db.Create(store.Users, store.Document{
		"username":    "reception",
		"email":       "reception@clinic.test",
		"password":    hash,
		"fullName":    "Front Desk",
		"role":        "receptionist",
		"permissions": []string{"patients", "appointments"},
		"status":      "active",
	})
	require.True(t, created.Success)

	return &fixture{
		db:      db,
		clock:   clk,
		manager: manager,
		userID:  created.Data.ID(),
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	result := f.manager.Login("reception", "Secret#99")
	require.True(t, result.Success)
	assert.Equal(t, f.userID, result.User.ID)
	assert.Empty(t, result.User.PasswordHash, "result user must be sanitized")
	assert.Equal(t, f.userID, result.Session.UserID)
	assert.NotEmpty(t, result.Session.SessionID)
	assert.Equal(t, "2025-03-10T12:00:00Z", result.Session.LoginTime)

	session, active := f.manager.Current()
	require.True(t, active)
	assert.Equal(t, result.Session.SessionID, session.SessionID)
}

func TestLogin_ByEmail(t *testing.T) {
	f := newFixture(t)

	result := f.manager.Login("reception@clinic.test", "Secret#99")
	assert.True(t, result.Success)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newFixture(t)

	result := f.manager.Login("nobody", "Secret#99")
	require.False(t, result.Success)
	assert.Equal(t, CodeInvalidCredentials, result.Error)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)

	result := f.manager.Login("reception", "wrong")
	require.False(t, result.Success)
	assert.Equal(t, CodeInvalidCredentials, result.Error)

	user := f.db.GetByID(store.Users, f.userID)
	assert.EqualValues(t, 1, user["loginAttempts"])
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 4; i++ {
		result := f.manager.Login("reception", "wrong")
		require.Equal(t, CodeInvalidCredentials, result.Error)
	}

	// Fifth failure trips the lock.
	result := f.manager.Login("reception", "wrong")
	require.False(t, result.Success)
	assert.Equal(t, CodeAccountLocked, result.Error)

	user := f.db.GetByID(store.Users, f.userID)
	assert.Equal(t, true, user["accountLocked"])
	assert.Equal(t, "2025-03-10T12:15:00Z", user["lockedUntil"])

	// The correct password is rejected while the lock holds.
	result = f.manager.Login("reception", "Secret#99")
	require.False(t, result.Success)
	assert.Equal(t, CodeAccountLocked, result.Error)
}

func TestLogin_LockExpires(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		f.manager.Login("reception", "wrong")
	}
	require.Equal(t, CodeAccountLocked, f.manager.Login("reception", "Secret#99").Error)

	f.clock.Advance(16 * time.Minute)

	result := f.manager.Login("reception", "Secret#99")
	require.True(t, result.Success)

	user := f.db.GetByID(store.Users, f.userID)
	assert.Equal(t, false, user["accountLocked"])
	assert.EqualValues(t, 0, user["loginAttempts"])
}

func TestLogin_InactiveUserRejected(t *testing.T) {
	f := newFixture(t)
	f.db.Update(store.Users, f.userID, store.Document{"status": "inactive"})

	result := f.manager.Login("reception", "Secret#99")
	require.False(t, result.Success)
	assert.Equal(t, CodeInvalidCredentials, result.Error)
}

func TestSession_LazyExpiry(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.manager.Login("reception", "Secret#99").Success)

	f.clock.Advance(29 * time.Minute)
	_, active := f.manager.Current()
	assert.True(t, active)

	f.clock.Advance(2 * time.Minute)
	_, active = f.manager.Current()
	assert.False(t, active)

	// Expiry evicted the stored record.
	_, present := f.db.Adapter().Get(store.KeySession)
	assert.False(t, present)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.manager.Login("reception", "Secret#99").Success)

	result := f.manager.Logout()
	assert.True(t, result.Success)

	_, active := f.manager.Current()
	assert.False(t, active)

	raw, present := f.db.Adapter().Get(store.KeyLogoutLogs)
	require.True(t, present)
	assert.Contains(t, raw, f.userID)

	// Logging out twice is still fine.
	assert.True(t, f.manager.Logout().Success)
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.manager.Login("reception", "Secret#99").Success)

	user, found := f.manager.CurrentUser()
	require.True(t, found)
	assert.Equal(t, "Front Desk", user.FullName)
}

func TestHasPermission(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.manager.HasPermission("patients"), "no session yet")

	require.True(t, f.manager.Login("reception", "Secret#99").Success)
	assert.True(t, f.manager.HasPermission("patients"))
	assert.False(t, f.manager.HasPermission("billing"))
}

func TestHasPermission_Wildcard(t *testing.T) {
	f := newFixture(t)

	hash, err := HashPassword("Admin@123")
	require.NoError(t, err)
	f.db.Create(store.Users, store.Document{
		"username":    "admin",
		"password":    hash,
		"role":        "admin",
		"permissions": []string{"*"},
		"status":      "active",
	})

	require.True(t, f.manager.Login("admin", "Admin@123").Success)
	assert.True(t, f.manager.HasPermission("anything_at_all"))
}

func TestActorStampsWrites(t *testing.T) {
	f := newFixture(t)

	before := f.db.Create(store.Patients, store.Document{"name": "Walk In"})
	assert.Equal(t, "system", before.Data["createdBy"])

	require.True(t, f.manager.Login("reception", "Secret#99").Success)
	after := f.db.Create(store.Patients, store.Document{"name": "Booked Ahead"})
	assert.Equal(t, f.userID, after.Data["createdBy"])
}
