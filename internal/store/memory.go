package store

import (
	"context"
	"errors"
	"sync"

	"github.com/sijil-app/sijil/internal/logging"
)

// Memory keeps all collections in process. The default backend for
// development and the fixture backend for tests.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
	failReads   bool
	hub         *hub
	logger      logging.Logger
}

// ErrReadsFailed is what a Memory store with failing reads returns.
// Fixture use only.
var ErrReadsFailed = errors.New("reads failing")

var _ Store = (*Memory)(nil)

func NewMemory(logger logging.Logger) *Memory {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Memory{
		collections: make(map[string]map[string]Document),
		hub:         newHub(),
		logger:      logger.With("component", "store", "backend", "memory"),
	}
}

func (m *Memory) Subscribe(collection string, onSnapshot func([]Record), onError func(error)) (func(), error) {
	return subscribeCollection(m.hub, m, collection, onSnapshot, onError)
}

func (m *Memory) SubscribeUsers(onSnapshot func(admins, viewers []Record), onError func(error)) (func(), error) {
	return subscribeUsers(m.hub, m, onSnapshot, onError)
}

func (m *Memory) Snapshot(ctx context.Context, collection string) ([]Record, error) {
	sources, ok := personCollections(collection)
	if !ok {
		return nil, ErrUnknownCollection
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failReads {
		return nil, ErrReadsFailed
	}

	recs := make([]Record, 0)
	for _, src := range sources {
		for id, doc := range m.collections[src] {
			recs = append(recs, Record{ID: id, Fields: doc.Clone()})
		}
	}
	sortRecords(recs)
	return recs, nil
}

func (m *Memory) Users(ctx context.Context) ([]Record, []Record, error) {
	admins, err := m.Snapshot(ctx, UsersAdmins)
	if err != nil {
		return nil, nil, err
	}
	viewers, err := m.Snapshot(ctx, UsersViewers)
	if err != nil {
		return nil, nil, err
	}
	return admins, viewers, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Record, error) {
	sources, ok := personCollections(collection)
	if !ok {
		return Record{}, ErrUnknownCollection
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, src := range sources {
		if doc, ok := m.collections[src][id]; ok {
			return Record{ID: id, Fields: doc.Clone()}, nil
		}
	}
	return Record{}, ErrNotFound
}

func (m *Memory) Insert(ctx context.Context, collection string, fields Document) (string, error) {
	if _, ok := personCollections(collection); !ok {
		return "", ErrUnknownCollection
	}
	id := NewPushID()

	m.mu.Lock()
	m.put(collection, id, fields.Clone())
	m.mu.Unlock()

	m.hub.notify(topicFor(collection))
	return id, nil
}

func (m *Memory) Merge(ctx context.Context, collection, id string, partial Document) error {
	sources, ok := personCollections(collection)
	if !ok {
		return ErrUnknownCollection
	}

	m.mu.Lock()
	target := collection
	var doc Document
	for _, src := range sources {
		if existing, ok := m.collections[src][id]; ok {
			target, doc = src, existing
			break
		}
	}
	if doc == nil {
		// merge against an absent path creates it
		doc = make(Document, len(partial))
	}
	for k, v := range partial {
		doc[k] = v
	}
	m.put(target, id, doc)
	m.mu.Unlock()

	m.hub.notify(topicFor(collection))
	return nil
}

func (m *Memory) Remove(ctx context.Context, collection, id string) error {
	sources, ok := personCollections(collection)
	if !ok {
		return ErrUnknownCollection
	}

	m.mu.Lock()
	removed := false
	for _, src := range sources {
		if _, ok := m.collections[src][id]; ok {
			delete(m.collections[src], id)
			removed = true
		}
	}
	m.mu.Unlock()

	if removed {
		m.hub.notify(topicFor(collection))
	}
	return nil
}

func (m *Memory) Close() error {
	m.hub.close()
	return nil
}

// FailReads toggles forced read failures, for exercising the error paths
// of subscribers and screens.
func (m *Memory) FailReads(fail bool) {
	m.mu.Lock()
	m.failReads = fail
	m.mu.Unlock()
}

// Seed places a document under a chosen key in a raw stored collection,
// including the legacy released grouping. Fixture and seeding use only.
func (m *Memory) Seed(collection, id string, fields Document) {
	m.mu.Lock()
	m.put(collection, id, fields.Clone())
	m.mu.Unlock()
	m.hub.notify(topicFor(collection))
}

// put assumes m.mu is held.
func (m *Memory) put(collection, id string, doc Document) {
	c := m.collections[collection]
	if c == nil {
		c = make(map[string]Document)
		m.collections[collection] = c
	}
	c[id] = doc
}
