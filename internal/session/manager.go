package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sijil-app/sijil/internal/logging"
	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/store"
)

// ErrUnknownUser is returned when no user group holds the given name.
// The web layer shows it and store failures as the same failed login;
// only the log distinguishes them.
var ErrUnknownUser = fmt.Errorf("unknown user")

// Manager performs logins against the users groups and issues/verifies
// session tokens. It is passed explicitly to every component that needs
// it; there is no package-level session state.
type Manager struct {
	store    store.Store
	secret   []byte
	validity time.Duration
	logger   logging.Logger
}

func NewManager(st store.Store, secret string, validity time.Duration, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Manager{
		store:    st,
		secret:   []byte(secret),
		validity: validity,
		logger:   logger.With("component", "session"),
	}
}

// Login resolves name against the users groups: trimmed exact match,
// case-sensitive, admins scanned before viewers. On a hit it returns the
// session and its signed token. A miss returns ErrUnknownUser; a store
// failure returns that failure. Callers presenting the result to a user
// collapse both into one "login failed" outcome.
func (m *Manager) Login(ctx context.Context, name string) (*Session, string, error) {
	trimmed := strings.TrimSpace(name)

	admins, viewers, err := m.store.Users(ctx)
	if err != nil {
		m.logger.Error(ctx, "users read failed during login", "error", err)
		return nil, "", fmt.Errorf("reading users: %w", err)
	}

	groups := []struct {
		recs []store.Record
		role records.Role
	}{
		{admins, records.RoleAdmin},
		{viewers, records.RoleViewer},
	}

	for _, g := range groups {
		for _, rec := range g.recs {
			stored := rec.Fields[records.FieldName]
			if stored == "" || strings.TrimSpace(stored) != trimmed {
				continue
			}
			sess := &Session{Name: stored, Role: g.role, Authenticated: true}
			token, err := EncodeToken(sess, m.secret, m.validity)
			if err != nil {
				m.logger.Error(ctx, "token signing failed", "error", err)
				return nil, "", err
			}
			m.logger.Info(ctx, "login ok", "name", stored, "role", g.role)
			return sess, token, nil
		}
	}

	m.logger.Info(ctx, "login failed, no such user", "name", trimmed)
	return nil, "", ErrUnknownUser
}

// Decode rebuilds the session held in a cookie value.
func (m *Manager) Decode(token string) (*Session, error) {
	return DecodeToken(token, m.secret)
}

// Validity is the configured session lifetime, used for cookie expiry.
func (m *Manager) Validity() time.Duration {
	return m.validity
}
