// Package store is the document store behind every screen: flat string
// documents grouped into collections, with push-based snapshot
// subscriptions. A subscriber gets the full collection immediately on
// registration and again after every change; an empty collection is an
// empty snapshot, not an error.
//
// Backends: Memory for development and tests, SQL (sqlite or postgres)
// for real deployments. Updates to a single document are last-write-wins;
// there is no atomicity across collections, which is why counterpart
// cleanup lives in a separate, best-effort reconciler.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// Collection names. ReleasedLegacy is a historical grouping that some old
// writers used; its rows are folded into Released snapshots and it is
// never addressable on its own.
const (
	Prisoners      = "prisoners"
	Released       = "released-prisoners"
	ReleasedLegacy = "releasedPrisoners"

	UsersAdmins  = "users/admins"
	UsersViewers = "users/viewers"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Document is a flat set of string fields. The store never interprets
// field values.
type Document map[string]string

// Clone returns an independent copy of d.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Record is a document together with its store-assigned key.
type Record struct {
	ID     string
	Fields Document
}

// Store is the adapter every screen talks to.
//
// Subscribe delivers an initial snapshot immediately and a fresh one after
// every change to the collection, until the returned cancel function is
// called. Failures to produce a snapshot go to onError; whether to retry
// or show a cached list is the subscriber's decision.
type Store interface {
	Subscribe(collection string, onSnapshot func([]Record), onError func(error)) (func(), error)
	SubscribeUsers(onSnapshot func(admins, viewers []Record), onError func(error)) (func(), error)

	// Snapshot is a one-shot read of a collection, ordered by key.
	Snapshot(ctx context.Context, collection string) ([]Record, error)
	// Users is a one-shot read of both user groups.
	Users(ctx context.Context) (admins, viewers []Record, err error)
	// Get reads a single document.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Insert stores fields under a fresh key and returns it.
	Insert(ctx context.Context, collection string, fields Document) (string, error)
	// Merge overlays partial onto the stored document, creating it when
	// absent. Untouched fields keep their values.
	Merge(ctx context.Context, collection, id string, partial Document) error
	// Remove deletes a document. Removing an absent document is a no-op.
	Remove(ctx context.Context, collection, id string) error

	Close() error
}

// Notifier broadcasts a change topic to other instances. The SQL backend
// uses it so mutations on one process refresh subscribers on all of them.
type Notifier interface {
	Publish(ctx context.Context, topic string)
}

// personCollections maps an addressable collection to the stored
// collections it reads from. Released reads the legacy grouping too.
func personCollections(collection string) ([]string, bool) {
	switch collection {
	case Prisoners:
		return []string{Prisoners}, true
	case Released:
		return []string{Released, ReleasedLegacy}, true
	case UsersAdmins, UsersViewers:
		return []string{collection}, true
	default:
		return nil, false
	}
}

// topicFor groups collections into notification topics: the two user
// groups share one topic because subscribers always see them as a pair,
// and the legacy grouping shares the released topic.
func topicFor(collection string) string {
	switch collection {
	case UsersAdmins, UsersViewers:
		return "users"
	case Released, ReleasedLegacy:
		return Released
	default:
		return collection
	}
}

// NewPushID returns a fresh store key.
func NewPushID() string {
	return uuid.NewString()
}

func sortRecords(recs []Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
}
