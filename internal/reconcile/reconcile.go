// Package reconcile removes duplicate person records across the two
// collections after a delete. The same person can legitimately exist in
// both `prisoners` and `released-prisoners` because entries are made by
// hand; when one copy is deleted, plausible counterparts in the other
// collection are deleted too.
//
// The contract is explicitly best effort and non-transactional: matching
// is heuristic, every failure is logged and swallowed, and nothing here
// runs on update — only deletion triggers cleanup, an asymmetry kept from
// the system this replaces.
package reconcile

import (
	"context"
	"strings"

	"github.com/sijil-app/sijil/internal/logging"
	"github.com/sijil-app/sijil/internal/metrics"
	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/store"
)

type Reconciler struct {
	store   store.Store
	logger  logging.Logger
	metrics *metrics.Metrics
}

func New(st store.Store, logger logging.Logger, m *metrics.Metrics) *Reconciler {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Reconciler{
		store:   st,
		logger:  logger.With("component", "reconcile"),
		metrics: m,
	}
}

// counterpartOf maps each person collection to the one it is reconciled
// against.
func counterpartOf(collection string) (string, bool) {
	switch collection {
	case store.Prisoners:
		return store.Released, true
	case store.Released:
		return store.Prisoners, true
	default:
		return "", false
	}
}

// CleanupCounterpart deletes records in the counterpart collection that
// plausibly represent the same person as deleted (already removed from
// collection). Match tiers, evaluated per candidate, first hit wins:
//
//  1. candidate key equals the deleted key
//  2. candidate's embedded id field equals the deleted key
//  3. candidate and deleted share a non-empty national id
//
// Several candidates may satisfy a tier; all of them go. Errors never
// propagate: the caller's own delete has already succeeded and the worst
// outcome of a skipped cleanup is a duplicate that was already tolerated.
func (r *Reconciler) CleanupCounterpart(ctx context.Context, collection string, deleted store.Record) {
	other, ok := counterpartOf(collection)
	if !ok {
		return
	}

	candidates, err := r.store.Snapshot(ctx, other)
	if err != nil {
		r.failed(ctx, "counterpart read failed", other, deleted.ID, err)
		return
	}

	deletedNID := strings.TrimSpace(deleted.Fields[records.FieldNationalID])

	for _, cand := range candidates {
		tier := matchTier(cand, deleted.ID, deletedNID)
		if tier == 0 {
			continue
		}
		if err := r.store.Remove(ctx, other, cand.ID); err != nil {
			r.failed(ctx, "counterpart delete failed", other, cand.ID, err)
			continue
		}
		if r.metrics != nil {
			r.metrics.ReconcileRemovals.Inc()
		}
		r.logger.Info(ctx, "removed counterpart record",
			"collection", other, "id", cand.ID, "tier", tier, "source", deleted.ID)
	}
}

// matchTier returns the first satisfied tier for cand, or 0. An empty
// national id never matches: many seed records carry a placeholder and
// matching on it would cross-delete unrelated people.
func matchTier(cand store.Record, deletedID, deletedNID string) int {
	if cand.ID == deletedID {
		return 1
	}
	if embedded := cand.Fields[records.FieldEmbeddedID]; embedded != "" && embedded == deletedID {
		return 2
	}
	if deletedNID == "" {
		return 0
	}
	if strings.TrimSpace(cand.Fields[records.FieldNationalID]) == deletedNID {
		return 3
	}
	return 0
}

func (r *Reconciler) failed(ctx context.Context, msg, collection, id string, err error) {
	if r.metrics != nil {
		r.metrics.ReconcileFailures.Inc()
	}
	r.logger.Warn(ctx, msg, "collection", collection, "id", id, "error", err)
}
