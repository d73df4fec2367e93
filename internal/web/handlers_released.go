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

func (s *Server) loadReleased(ctx context.Context) ([]records.ReleasedPrisoner, error) {
	recs, err := s.store.Snapshot(ctx, store.Released)
	if err != nil {
		return nil, err
	}
	out := make([]records.ReleasedPrisoner, 0, len(recs))
	for _, rec := range recs {
		out = append(out, records.ReleasedFromDoc(rec.ID, rec.Fields))
	}
	return out, nil
}

func (s *Server) handleReleased(w http.ResponseWriter, r *http.Request) {
	data := s.newPage(r)

	list, err := s.loadReleased(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "released read failed", "error", err)
		data.LoadError = true
		s.render(w, r, "released.html", data)
		return
	}

	data.Released = records.FilterReleased(list, data.Term)
	s.render(w, r, "released.html", data)
}

func (s *Server) handleReleasedExport(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	list, err := s.loadReleased(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "released read failed", "error", err)
		http.Redirect(w, r, "/released?err=save", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.Released(w, records.FilterReleased(list, term), strings.TrimSpace(term)); err != nil {
		s.logger.Error(r.Context(), "export render failed", "error", err)
	}
}

func (s *Server) handleReleasedForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "released_form.html", s.newPage(r))
}

func releasedFromForm(r *http.Request) (records.ReleasedPrisoner, bool) {
	p := records.ReleasedPrisoner{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Charge:      strings.TrimSpace(r.FormValue("charge")),
		Prison:      strings.TrimSpace(r.FormValue("prison")),
		Family:      strings.TrimSpace(r.FormValue("family")),
		Residence:   strings.TrimSpace(r.FormValue("residence")),
		ReleaseDate: strings.TrimSpace(r.FormValue("releaseDate")),
		Children:    strings.TrimSpace(r.FormValue("children")),
		Education:   strings.TrimSpace(r.FormValue("education")),
		Submissions: r.FormValue("submissions"),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
		NationalID:  strings.TrimSpace(r.FormValue("nationalId")),
		Signature:   strings.TrimSpace(r.FormValue("signature")),
	}
	required := []string{p.Name, p.Charge, p.Prison, p.Family, p.Residence, p.ReleaseDate, p.Phone, p.NationalID}
	for _, f := range required {
		if f == "" {
			return p, false
		}
	}
	return p, true
}

func (s *Server) handleReleasedCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := releasedFromForm(r)
	if !ok {
		http.Redirect(w, r, "/released/new?err=form", http.StatusSeeOther)
		return
	}

	_, err := s.store.Insert(r.Context(), store.Released, p.Doc())
	s.countMutation(store.Released, "insert", err)
	if err != nil {
		s.logger.Error(r.Context(), "released insert failed", "error", err)
		http.Redirect(w, r, "/released/new?err=save", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/released?ok=saved", http.StatusSeeOther)
}

func (s *Server) handleReleasedEditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.Get(r.Context(), store.Released, id)
	if err != nil {
		http.Redirect(w, r, "/released?err=save", http.StatusSeeOther)
		return
	}

	data := s.newPage(r)
	data.RelRec = records.ReleasedFromDoc(rec.ID, rec.Fields)
	data.Editing = true
	s.render(w, r, "released_form.html", data)
}

func (s *Server) handleReleasedUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := releasedFromForm(r)
	if !ok {
		http.Redirect(w, r, "/released/"+id+"/edit?err=form", http.StatusSeeOther)
		return
	}

	err := s.store.Merge(r.Context(), store.Released, id, p.Doc())
	s.countMutation(store.Released, "merge", err)
	if err != nil {
		s.logger.Error(r.Context(), "released update failed", "id", id, "error", err)
		http.Redirect(w, r, "/released/"+id+"/edit?err=save", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/released?ok=saved", http.StatusSeeOther)
}

func (s *Server) handleReleasedDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	rec, err := s.store.Get(ctx, store.Released, id)
	if err != nil {
		rec = store.Record{ID: id, Fields: store.Document{}}
	}

	err = s.store.Remove(ctx, store.Released, id)
	s.countMutation(store.Released, "remove", err)
	if err != nil {
		s.logger.Error(ctx, "released delete failed", "id", id, "error", err)
		http.Redirect(w, r, "/released?err=delete", http.StatusSeeOther)
		return
	}

	s.reconciler.CleanupCounterpart(ctx, store.Released, rec)

	http.Redirect(w, r, "/released?ok=deleted", http.StatusSeeOther)
}
