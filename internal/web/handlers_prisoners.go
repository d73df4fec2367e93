package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sijil-app/sijil/internal/export"
	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/store"
)

func (s *Server) loadPrisoners(ctx context.Context) ([]records.Prisoner, error) {
	recs, err := s.store.Snapshot(ctx, store.Prisoners)
	if err != nil {
		return nil, err
	}
	out := make([]records.Prisoner, 0, len(recs))
	for _, rec := range recs {
		out = append(out, records.PrisonerFromDoc(rec.ID, rec.Fields))
	}
	return out, nil
}

func (s *Server) countMutation(collection, op string, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.metrics.Mutations.WithLabelValues(collection, op, result).Inc()
}

func (s *Server) handlePrisoners(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r)

	list, err := s.loadPrisoners(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "prisoners read failed", "error", err)
		data.LoadError = true
		s.render(w, r, "prisoners.html", data)
		return
	}

	data.Prisoners = records.FilterPrisoners(list, data.Term)
	s.render(w, r, "prisoners.html", data)
}

func (s *Server) handlePrisonersExport(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	list, err := s.loadPrisoners(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "prisoners read failed", "error", err)
		http.Redirect(w, r, "/prisoners?err=save", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.Prisoners(w, records.FilterPrisoners(list, term), strings.TrimSpace(term)); err != nil {
		s.logger.Error(r.Context(), "export render failed", "error", err)
	}
}

func (s *Server) handlePrisonerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "prisoner_form.html", s.newPage(r))
}

// prisonerFromForm reads the submitted fields. Children and education are
// the only optional ones; everything else is required by the form even
// when the stored data leaves it blank.
func prisonerFromForm(r *http.Request) (records.Prisoner, bool) {
	p := records.Prisoner{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Charge:      strings.TrimSpace(r.FormValue("charge")),
		Prison:      strings.TrimSpace(r.FormValue("prison")),
		Family:      strings.TrimSpace(r.FormValue("family")),
		Residence:   strings.TrimSpace(r.FormValue("residence")),
		Years:       strings.TrimSpace(r.FormValue("years")),
		From:        strings.TrimSpace(r.FormValue("from")),
		To:          strings.TrimSpace(r.FormValue("to")),
		Children:    strings.TrimSpace(r.FormValue("children")),
		Education:   strings.TrimSpace(r.FormValue("education")),
		Submissions: r.FormValue("submissions"),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		NationalID:  strings.TrimSpace(r.FormValue("nationalId")),
		Signature:   strings.TrimSpace(r.FormValue("signature")),
	}
	required := []string{p.Name, p.Charge, p.Prison, p.Family, p.Residence, p.Years, p.From, p.To, p.Phone, p.NationalID}
	for _, f := range required {
		if f == "" {
			return p, false
		}
	}
	return p, true
}

func (s *Server) handlePrisonerCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := prisonerFromForm(r)
	if !ok {
		http.Redirect(w, r, "/prisoners/new?err=form", http.StatusSeeOther)
		return
	}

	_, err := s.store.Insert(r.Context(), store.Prisoners, p.Doc())
	s.countMutation(store.Prisoners, "insert", err)
	if err != nil {
		s.logger.Error(r.Context(), "prisoner insert failed", "error", err)
		http.Redirect(w, r, "/prisoners/new?err=save", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/prisoners?ok=saved", http.StatusSeeOther)
}

func (s *Server) handlePrisonerEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), store.Prisoners, id)
	if err != nil {
		http.Redirect(w, r, "/prisoners?err=save", http.StatusSeeOther)
		return
	}

	data := s.newPage(r)
	data.Prisoner = records.PrisonerFromDoc(rec.ID, rec.Fields)
	data.Editing = true
	s.render(w, r, "prisoner_form.html", data)
}

func (s *Server) handlePrisonerUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := prisonerFromForm(r)
	if !ok {
		http.Redirect(w, r, "/prisoners/"+id+"/edit?err=form", http.StatusSeeOther)
		return
	}

	err := s.store.Merge(r.Context(), store.Prisoners, id, p.Doc())
	s.countMutation(store.Prisoners, "merge", err)
	if err != nil {
		s.logger.Error(r.Context(), "prisoner update failed", "id", id, "error", err)
		http.Redirect(w, r, "/prisoners/"+id+"/edit?err=save", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/prisoners?ok=saved", http.StatusSeeOther)
}

func (s *Server) handlePrisonerDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	// read before delete so the reconciler still has the national id
	rec, err := s.store.Get(ctx, store.Prisoners, id)
	if err != nil {
		rec = store.Record{ID: id, Fields: store.Document{}}
	}

	err = s.store.Remove(ctx, store.Prisoners, id)
	s.countMutation(store.Prisoners, "remove", err)
	if err != nil {
		s.logger.Error(ctx, "prisoner delete failed", "id", id, "error", err)
		http.Redirect(w, r, "/prisoners?err=delete", http.StatusSeeOther)
		return
	}

	s.reconciler.CleanupCounterpart(ctx, store.Prisoners, rec)

	http.Redirect(w, r, "/prisoners?ok=deleted", http.StatusSeeOther)
}
