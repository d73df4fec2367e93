package web

import (
	"context"
	"net/http"

	"github.com/sijil-app/sijil/internal/session"
)

type sessionKey struct{}

// withSession rehydrates the session cookie into the request context
// before any handler runs, so every screen renders against a settled
// session — there is no window where a logged-in user sees the login
// form. A missing or undecodable cookie just means no session.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(session.CookieName); err == nil {
			if sess, err := s.sessions.Decode(cookie.Value); err == nil {
				ctx := context.WithValue(r.Context(), sessionKey{}, sess)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey{}).(*session.Session)
	return sess
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())
		if sess == nil || !sess.Authenticated {
			if isAPIRequest(r) {
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())
		if !sess.IsAdmin() {
			if isAPIRequest(r) {
				writeError(w, http.StatusForbidden, "admin_only")
				return
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isAPIRequest(r *http.Request) bool {
	return len(r.URL.Path) >= 5 && r.URL.Path[:5] == "/api/"
}
