package web

import (
	"errors"
	"net/http"

	"github.com/sijil-app/sijil/internal/session"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r.Context()); sess != nil && sess.Authenticated {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", s.newPage(r))
}

// handleLogin performs the name-only login. An unknown name and an
// unreachable store produce the same banner on purpose; the log carries
// the difference.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")

	_, token, err := s.sessions.Login(r.Context(), name)
	if err != nil {
		if s.metrics != nil {
			result := "error"
			if errors.Is(err, session.ErrUnknownUser) {
				result = "miss"
			}
			s.metrics.Logins.WithLabelValues(result).Inc()
		}
		http.Redirect(w, r, "/login?err=login", http.StatusSeeOther)
		return
	}

	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues("ok").Inc()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.Validity().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "home.html", s.newPage(r))
}
