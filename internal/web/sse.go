package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/store"
)

// The stream endpoints are the push side of the subscription contract:
// one snapshot event immediately on connect, another after every change,
// an error event when a snapshot cannot be produced. The client keeps its
// last good snapshot and may simply reconnect to retry.

type sseEvent struct {
	name    string
	payload any
}

func (s *Server) handlePrisonersStream(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, func(send func(sseEvent)) (func(), error) {
		return s.store.Subscribe(store.Prisoners,
			func(recs []store.Record) {
				list := make([]records.Prisoner, 0, len(recs))
				for _, rec := range recs {
					list = append(list, records.PrisonerFromDoc(rec.ID, rec.Fields))
				}
				send(sseEvent{name: "snapshot", payload: list})
			},
			func(err error) {
				send(sseEvent{name: "error", payload: map[string]string{"error": err.Error()}})
			})
	})
}

func (s *Server) handleReleasedStream(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, func(send func(sseEvent)) (func(), error) {
		return s.store.Subscribe(store.Released,
			func(recs []store.Record) {
				list := make([]records.ReleasedPrisoner, 0, len(recs))
				for _, rec := range recs {
					list = append(list, records.ReleasedFromDoc(rec.ID, rec.Fields))
				}
				send(sseEvent{name: "snapshot", payload: list})
			},
			func(err error) {
				send(sseEvent{name: "error", payload: map[string]string{"error": err.Error()}})
			})
	})
}

func (s *Server) handleUsersStream(w http.ResponseWriter, r *http.Request) {
	s.stream(w, r, func(send func(sseEvent)) (func(), error) {
		return s.store.SubscribeUsers(
			func(admins, viewers []store.Record) {
				send(sseEvent{name: "snapshot", payload: map[string]any{
					"admins":  usersFromRecords(admins, records.RoleAdmin),
					"viewers": usersFromRecords(viewers, records.RoleViewer),
				}})
			},
			func(err error) {
				send(sseEvent{name: "error", payload: map[string]string{"error": err.Error()}})
			})
	})
}

// stream pumps subscription events to the client until it disconnects.
// Store callbacks arrive on the subscription goroutine; they are handed
// to the handler goroutine over a channel so only one writer touches the
// connection.
func (s *Server) stream(w http.ResponseWriter, r *http.Request, subscribe func(send func(sseEvent)) (func(), error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}

	events := make(chan sseEvent, 16)
	done := make(chan struct{})
	send := func(ev sseEvent) {
		select {
		case events <- ev:
		case <-done:
		}
	}

	cancel, err := subscribe(send)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_collection")
		return
	}
	defer cancel()
	defer close(done)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-events:
			data, err := json.Marshal(ev.payload)
			if err != nil {
				s.logger.Error(r.Context(), "sse payload marshal failed", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, data)
			flusher.Flush()
		}
	}
}
