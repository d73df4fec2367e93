// Package web serves the record screens: server-rendered Arabic RTL pages
// backed by live snapshot streams (SSE) and a small JSON API. Role gating
// happens twice: templates hide what the role cannot do, and mutation
// routes re-check the session server-side. The template gating alone is a
// convenience, not a security control — the middleware is the boundary.
package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sijil-app/sijil/internal/logging"
	"github.com/sijil-app/sijil/internal/metrics"
	"github.com/sijil-app/sijil/internal/reconcile"
	"github.com/sijil-app/sijil/internal/session"
	"github.com/sijil-app/sijil/internal/store"
)

type Server struct {
	store      store.Store
	sessions   *session.Manager
	reconciler *reconcile.Reconciler
	metrics    *metrics.Metrics
	logger     logging.Logger
	origins    []string
}

func NewServer(st store.Store, sessions *session.Manager, rec *reconcile.Reconciler,
	m *metrics.Metrics, logger logging.Logger, allowedOrigins string) *Server {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Server{
		store:      st,
		sessions:   sessions,
		reconciler: rec,
		metrics:    m,
		logger:     logger.With("component", "web"),
		origins:    splitOrigins(allowedOrigins),
	}
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: true,
	}))
	r.Use(s.withSession)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	// screens
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/", s.handleHome)

		r.Get("/prisoners", s.handlePrisoners)
		r.Get("/prisoners/export", s.handlePrisonersExport)
		r.Get("/released", s.handleReleased)
		r.Get("/released/export", s.handleReleasedExport)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Get("/prisoners/new", s.handlePrisonerForm)
			r.Post("/prisoners", s.handlePrisonerCreate)
			r.Get("/prisoners/{id}/edit", s.handlePrisonerEditForm)
			r.Post("/prisoners/{id}", s.handlePrisonerUpdate)
			r.Post("/prisoners/{id}/delete", s.handlePrisonerDelete)

			r.Get("/released/new", s.handleReleasedForm)
			r.Post("/released", s.handleReleasedCreate)
			r.Get("/released/{id}/edit", s.handleReleasedEditForm)
			r.Post("/released/{id}", s.handleReleasedUpdate)
			r.Post("/released/{id}/delete", s.handleReleasedDelete)

			r.Get("/users", s.handleUsers)
			r.Post("/users", s.handleUserCreate)
			r.Post("/users/{role}/{id}/delete", s.handleUserDelete)
			r.Post("/users/{role}/{id}/switch", s.handleUserSwitchRole)
		})
	})

	// live data for the screens
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/api/prisoners", s.handleAPIPrisoners)
		r.Get("/api/released", s.handleAPIReleased)
		r.Get("/api/prisoners/stream", s.handlePrisonersStream)
		r.Get("/api/released/stream", s.handleReleasedStream)
		r.With(s.requireAdmin).Get("/api/users", s.handleAPIUsers)
		r.With(s.requireAdmin).Get("/api/users/stream", s.handleUsersStream)
	})

	return r
}
