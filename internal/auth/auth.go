// Package auth implements the identity and session manager: credential
// checks with a lockout counter, a single persisted session with lazy
// expiry, and permission checks against the session's permission set.
//
// Passwords are stored as bcrypt hashes.
package auth

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/badrsabra/clinicpro/internal/config"
	"github.com/badrsabra/clinicpro/internal/model"
	"github.com/badrsabra/clinicpro/internal/notify"
	"github.com/badrsabra/clinicpro/internal/store"
)

// Error codes carried in failed login results.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
)

// LoginResult is the outcome of a login attempt. On success User is
// sanitized (no password hash) and Session is the persisted record.
type LoginResult struct {
	Success bool          `json:"success"`
	User    model.User    `json:"user,omitempty"`
	Session model.Session `json:"session,omitempty"`
	Error   string        `json:"error,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Manager mediates authentication and the process-wide session.
type Manager struct {
	db       *store.DB
	notifier *notify.Service
	sec      config.Security
}

// NewManager creates the identity manager and installs itself as the
// store's actor source, so createdBy/updatedBy stamps resolve to the
// logged-in user.
func NewManager(db *store.DB, notifier *notify.Service, sec config.Security) *Manager {
	m := &Manager{db: db, notifier: notifier, sec: sec}
	db.SetActor(m.actorID)
	return m
}

// HashPassword produces the stored bcrypt hash for a password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login authenticates by username or email. Five consecutive failures
// (configurable) lock the account for the lockout window; a locked
// account rejects even the correct password until the window elapses.
func (m *Manager) Login(username, password string) LoginResult {
	user, found := m.findActiveUser(username)
	if !found {
		return LoginResult{
			Success: false,
			Error:   CodeInvalidCredentials,
			Message: "unknown username or email",
		}
	}

	now := m.db.Clock().Now()
	if user.AccountLocked && user.LockedUntil != "" {
		until, err := time.Parse(time.RFC3339, user.LockedUntil)
		if err == nil && until.After(now) {
			return LoginResult{
				Success: false,
				Error:   CodeAccountLocked,
				Message: "account temporarily locked, try again later",
			}
		}
	}

	if !CheckPassword(user.PasswordHash, password) {
		attempts := user.LoginAttempts + 1
		if attempts >= m.sec.MaxLoginAttempts {
			lockedUntil := now.Add(m.sec.Lockout()).UTC().Format(time.RFC3339)
			m.db.Update(store.Users, user.ID, store.Document{
				"loginAttempts": 0,
				"accountLocked": true,
				"lockedUntil":   lockedUntil,
			})
			return LoginResult{
				Success: false,
				Error:   CodeAccountLocked,
				Message: "account locked after repeated failed logins",
			}
		}
		m.db.Update(store.Users, user.ID, store.Document{
			"loginAttempts": attempts,
		})
		return LoginResult{
			Success: false,
			Error:   CodeInvalidCredentials,
			Message: "incorrect password",
		}
	}

	session := model.Session{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: user.Permissions,
		LoginTime:   now.UTC().Format(time.RFC3339),
		SessionID:   uuid.Must(uuid.NewV7()).String(),
	}
	if err := m.writeSession(session); err != nil {
		return LoginResult{
			Success: false,
			Error:   string(store.CodeStorageUnavailable),
			Message: "could not persist session",
		}
	}

	m.db.Update(store.Users, user.ID, store.Document{
		"lastLogin":     session.LoginTime,
		"loginAttempts": 0,
		"accountLocked": false,
		"lockedUntil":   "",
	})
	m.notifier.Create(user.ID, "Signed in", "You signed in to your account", "success")

	return LoginResult{
		Success: true,
		User:    user.Sanitized(),
		Session: session,
		Message: "signed in",
	}
}

// Logout appends the session to the logout audit log and removes the
// session record. Logging out without a session still succeeds.
func (m *Manager) Logout() store.Result {
	if session, active := m.Current(); active {
		m.appendLogoutLog(session)
	}
	m.db.Adapter().Remove(store.KeySession)
	return store.Result{Success: true, Message: "signed out"}
}

// Current returns the session record if it is still within the session
// timeout. An expired session is evicted on this read - expiry is lazy,
// there is no background timer.
func (m *Manager) Current() (model.Session, bool) {
	raw, present := m.db.Adapter().Get(store.KeySession)
	if !present {
		return model.Session{}, false
	}
	var session model.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		m.db.Adapter().Remove(store.KeySession)
		return model.Session{}, false
	}

	loginTime, err := time.Parse(time.RFC3339, session.LoginTime)
	if err != nil || m.db.Clock().Now().Sub(loginTime) > m.sec.SessionTimeout() {
		m.db.Adapter().Remove(store.KeySession)
		return model.Session{}, false
	}
	return session, true
}

// CurrentUser resolves the session's user document.
func (m *Manager) CurrentUser() (model.User, bool) {
	session, active := m.Current()
	if !active {
		return model.User{}, false
	}
	doc := m.db.GetByID(store.Users, session.UserID)
	if doc == nil {
		return model.User{}, false
	}
	user, err := store.Decode[model.User](doc)
	if err != nil {
		return model.User{}, false
	}
	return user, true
}

// HasPermission checks the session's permission set. The admin role with
// the wildcard permission short-circuits to allowed; otherwise the
// permission must appear literally, or the set must hold the wildcard.
func (m *Manager) HasPermission(permission string) bool {
	session, active := m.Current()
	if !active {
		return false
	}
	if session.Role == "admin" && contains(session.Permissions, "*") {
		return true
	}
	return contains(session.Permissions, permission) || contains(session.Permissions, "*")
}

func (m *Manager) findActiveUser(username string) (model.User, bool) {
	for _, doc := range m.db.GetAll(store.Users, store.Filters{"status": "active"}) {
		user, err := store.Decode[model.User](doc)
		if err != nil {
			continue
		}
		if user.Username == username || user.Email == username {
			return user, true
		}
	}
	return model.User{}, false
}

// actorID is the store's createdBy/updatedBy source.
func (m *Manager) actorID() string {
	if session, active := m.Current(); active {
		return session.UserID
	}
	return "system"
}

func (m *Manager) writeSession(session model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return m.db.Adapter().Set(store.KeySession, string(data))
}

type logoutRecord struct {
	model.Session
	LogoutTime string `json:"logoutTime"`
}

func (m *Manager) appendLogoutLog(session model.Session) {
	var logs []logoutRecord
	if raw, present := m.db.Adapter().Get(store.KeyLogoutLogs); present {
		_ = json.Unmarshal([]byte(raw), &logs)
	}
	logs = append(logs, logoutRecord{Session: session, LogoutTime: m.db.Now()})
	if data, err := json.Marshal(logs); err == nil {
		_ = m.db.Adapter().Set(store.KeyLogoutLogs, string(data))
	}
}

func contains(set []string, want string) bool {
	for _, p := range set {
		if p == want {
			return true
		}
	}
	return false
}
