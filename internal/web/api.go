package web

import (
	"net/http"

	"github.com/sijil-app/sijil/internal/records"
)

func (s *Server) handleAPIPrisoners(w http.ResponseWriter, r *http.Request) {
	list, err := s.loadPrisoners(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "prisoners read failed", "error", err)
		writeError(w, http.StatusBadGateway, "store_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records.FilterPrisoners(list, r.URL.Query().Get("q")),
	})
}

func (s *Server) handleAPIReleased(w http.ResponseWriter, r *http.Request) {
	list, err := s.loadReleased(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "released read failed", "error", err)
		writeError(w, http.StatusBadGateway, "store_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"records": records.FilterReleased(list, r.URL.Query().Get("q")),
	})
}

func (s *Server) handleAPIUsers(w http.ResponseWriter, r *http.Request) {
	admins, viewers, err := s.store.Users(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "users read failed", "error", err)
		writeError(w, http.StatusBadGateway, "store_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"admins":  usersFromRecords(admins, records.RoleAdmin),
		"viewers": usersFromRecords(viewers, records.RoleViewer),
	})
}
