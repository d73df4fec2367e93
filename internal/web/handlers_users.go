package web

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/store"
)

func userCollection(role records.Role) string {
	if role == records.RoleAdmin {
		return store.UsersAdmins
	}
	return store.UsersViewers
}

func usersFromRecords(recs []store.Record, role records.Role) []records.User {
	out := make([]records.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, records.UserFromDoc(rec.ID, rec.Fields, role))
	}
	return out
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r)

	admins, viewers, err := s.store.Users(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "users read failed", "error", err)
		data.LoadError = true
		s.render(w, r, "users.html", data)
		return
	}

	data.Admins = usersFromRecords(admins, records.RoleAdmin)
	data.Viewers = usersFromRecords(viewers, records.RoleViewer)
	s.render(w, r, "users.html", data)
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	role := records.Role(r.FormValue("role"))
	if name == "" || !role.Valid() {
		http.Redirect(w, r, "/users?err=form", http.StatusSeeOther)
		return
	}

	coll := userCollection(role)
	_, err := s.store.Insert(r.Context(), coll, records.User{Name: name}.Doc())
	s.countMutation(coll, "insert", err)
	if err != nil {
		s.logger.Error(r.Context(), "user insert failed", "error", err)
		http.Redirect(w, r, "/users?err=save", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users?ok=saved", http.StatusSeeOther)
}

func roleParam(r *http.Request) (records.Role, bool) {
	role := records.Role(chi.URLParam(r, "role"))
	return role, role.Valid()
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	role, ok := roleParam(r)
	if !ok {
		http.Redirect(w, r, "/users?err=delete", http.StatusSeeOther)
		return
	}
	id := chi.URLParam(r, "id")

	coll := userCollection(role)
	err := s.store.Remove(r.Context(), coll, id)
	s.countMutation(coll, "remove", err)
	if err != nil {
		s.logger.Error(r.Context(), "user delete failed", "id", id, "error", err)
		http.Redirect(w, r, "/users?err=delete", http.StatusSeeOther)
		return
	}

	// open sessions of this user stay valid until their cookies expire or
	// they log out; deletion only blocks future logins
	http.Redirect(w, r, "/users?ok=deleted", http.StatusSeeOther)
}

// handleUserSwitchRole moves a user between the two groups. The groups
// are separate paths with no transaction across them, so this is
// insert-into-new first, delete-from-old second: the worst partial
// failure leaves the user in both groups (admins win at login) instead of
// in neither.
func (s *Server) handleUserSwitchRole(w http.ResponseWriter, r *http.Request) {
	role, ok := roleParam(r)
	if !ok {
		http.Redirect(w, r, "/users?err=save", http.StatusSeeOther)
		return
	}
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	from := userCollection(role)
	to := userCollection(records.RoleViewer)
	if role == records.RoleViewer {
		to = userCollection(records.RoleAdmin)
	}

	rec, err := s.store.Get(ctx, from, id)
	if err != nil {
		http.Redirect(w, r, "/users?err=save", http.StatusSeeOther)
		return
	}

	_, err = s.store.Insert(ctx, to, rec.Fields)
	s.countMutation(to, "insert", err)
	if err != nil {
		s.logger.Error(ctx, "role switch insert failed", "id", id, "error", err)
		http.Redirect(w, r, "/users?err=save", http.StatusSeeOther)
		return
	}

	err = s.store.Remove(ctx, from, id)
	s.countMutation(from, "remove", err)
	if err != nil {
		// user now exists in both groups; login prefers admins
		s.logger.Warn(ctx, "role switch delete failed, user left in both groups", "id", id, "error", err)
		http.Redirect(w, r, "/users?err=save", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/users?ok=saved", http.StatusSeeOther)
}
