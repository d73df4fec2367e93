// Package session holds the browser session: who is logged in and with
// which role. Login is a one-shot lookup of the users groups by exact
// trimmed name, admins before viewers, no password. The resulting session
// travels as a signed cookie and is trusted until logout — it is never
// re-validated against the store, so a user deleted from the store keeps
// any session already issued, exactly like the localStorage copy it
// replaces.
package session

import (
	"github.com/sijil-app/sijil/internal/records"
)

// CookieName is the single origin-scoped key the session lives under.
const CookieName = "sijil-session"

// Session is the client-held projection of a user record.
type Session struct {
	Name          string       `json:"name"`
	Role          records.Role `json:"role"`
	Authenticated bool         `json:"isAuthenticated"`
}

// IsAdmin reports whether the session may mutate records.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Authenticated && s.Role == records.RoleAdmin
}
