package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSnapshot(t *testing.T, ch <-chan []Record) []Record {
	t.Helper()
	select {
	case recs := <-ch:
		return recs
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestMemory_SubscribeDeliversInitialEmptySnapshot(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()

	ch := make(chan []Record, 4)
	cancel, err := m.Subscribe(Prisoners, func(recs []Record) { ch <- recs }, nil)
	require.NoError(t, err)
	defer cancel()

	recs := waitSnapshot(t, ch)
	assert.Empty(t, recs)
}

func TestMemory_InsertRoundTrip(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	fields := Document{"name": "أحمد", "charge": "رأي", "nationalId": "123"}
	id, err := m.Insert(ctx, Prisoners, fields)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	recs, err := m.Snapshot(ctx, Prisoners)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ID)
	assert.Equal(t, fields, recs[0].Fields)

	// mutating the caller's map after insert must not affect the store
	fields["name"] = "changed"
	recs, err = m.Snapshot(ctx, Prisoners)
	require.NoError(t, err)
	assert.Equal(t, "أحمد", recs[0].Fields["name"])
}

func TestMemory_SubscribePushesAfterMutation(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	ch := make(chan []Record, 4)
	cancel, err := m.Subscribe(Prisoners, func(recs []Record) { ch <- recs }, nil)
	require.NoError(t, err)
	defer cancel()

	waitSnapshot(t, ch) // initial

	id, err := m.Insert(ctx, Prisoners, Document{"name": "x"})
	require.NoError(t, err)

	recs := waitSnapshot(t, ch)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ID)
}

func TestMemory_UnsubscribeStopsDelivery(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	ch := make(chan []Record, 4)
	cancel, err := m.Subscribe(Prisoners, func(recs []Record) { ch <- recs }, nil)
	require.NoError(t, err)

	waitSnapshot(t, ch)
	cancel()

	_, err = m.Insert(ctx, Prisoners, Document{"name": "x"})
	require.NoError(t, err)

	select {
	case recs := <-ch:
		t.Fatalf("unexpected snapshot after cancel: %v", recs)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMemory_CancelAfterCloseDoesNotPanic(t *testing.T) {
	m := NewMemory(nil)

	ch := make(chan []Record, 4)
	cancel, err := m.Subscribe(Prisoners, func(recs []Record) { ch <- recs }, nil)
	require.NoError(t, err)

	waitSnapshot(t, ch)

	// shutdown order in practice: the store closes first, a streaming
	// handler that outlived it cancels afterwards
	require.NoError(t, m.Close())
	assert.NotPanics(t, func() {
		cancel()
		cancel()
	})
}

func TestMemory_ConcurrentCloseAndCancel(t *testing.T) {
	m := NewMemory(nil)

	cancels := make([]func(), 0, 8)
	for i := 0; i < 8; i++ {
		cancel, err := m.Subscribe(Prisoners, func([]Record) {}, nil)
		require.NoError(t, err)
		cancels = append(cancels, cancel)
	}

	var wg sync.WaitGroup
	wg.Add(len(cancels) + 1)
	go func() {
		defer wg.Done()
		_ = m.Close()
	}()
	for _, cancel := range cancels {
		go func(cancel func()) {
			defer wg.Done()
			cancel()
		}(cancel)
	}
	wg.Wait()
}

func TestMemory_SubscribeAfterCloseIsInert(t *testing.T) {
	m := NewMemory(nil)
	require.NoError(t, m.Close())

	cancel, err := m.Subscribe(Prisoners, func([]Record) {}, nil)
	require.NoError(t, err)
	assert.NotPanics(t, cancel)
}

func TestMemory_MergeOverlaysFields(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	id, err := m.Insert(ctx, Prisoners, Document{"name": "a", "prison": "p1"})
	require.NoError(t, err)

	require.NoError(t, m.Merge(ctx, Prisoners, id, Document{"prison": "p2"}))

	rec, err := m.Get(ctx, Prisoners, id)
	require.NoError(t, err)
	assert.Equal(t, "a", rec.Fields["name"])
	assert.Equal(t, "p2", rec.Fields["prison"])
}

func TestMemory_MergeCreatesAbsentDocument(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Merge(ctx, Prisoners, "fixed-id", Document{"name": "a"}))

	rec, err := m.Get(ctx, Prisoners, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "a", rec.Fields["name"])
}

func TestMemory_RemoveIsIdempotent(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	id, err := m.Insert(ctx, Prisoners, Document{"name": "a"})
	require.NoError(t, err)

	require.NoError(t, m.Remove(ctx, Prisoners, id))
	require.NoError(t, m.Remove(ctx, Prisoners, id))

	_, err = m.Get(ctx, Prisoners, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_LegacyReleasedGroupingFoldsIntoReleased(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	m.Seed(ReleasedLegacy, "0", Document{"name": "قديم"})
	id, err := m.Insert(ctx, Released, Document{"name": "جديد"})
	require.NoError(t, err)

	recs, err := m.Snapshot(ctx, Released)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	names := map[string]string{}
	for _, r := range recs {
		names[r.ID] = r.Fields["name"]
	}
	assert.Equal(t, "قديم", names["0"])
	assert.Equal(t, "جديد", names[id])

	// legacy rows are reachable for merge and remove through Released
	require.NoError(t, m.Merge(ctx, Released, "0", Document{"name": "معدل"}))
	rec, err := m.Get(ctx, Released, "0")
	require.NoError(t, err)
	assert.Equal(t, "معدل", rec.Fields["name"])

	require.NoError(t, m.Remove(ctx, Released, "0"))
	_, err = m.Get(ctx, Released, "0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_UnknownCollection(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	_, err := m.Snapshot(ctx, "releasedPrisoners")
	assert.ErrorIs(t, err, ErrUnknownCollection, "legacy grouping is not addressable")

	_, err = m.Insert(ctx, "nope", Document{})
	assert.ErrorIs(t, err, ErrUnknownCollection)

	_, err = m.Subscribe("nope", func([]Record) {}, nil)
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestMemory_SubscribeUsersDeliversBothGroups(t *testing.T) {
	m := NewMemory(nil)
	defer m.Close()
	ctx := context.Background()

	_, err := m.Insert(ctx, UsersAdmins, Document{"name": "Ali"})
	require.NoError(t, err)
	_, err = m.Insert(ctx, UsersViewers, Document{"name": "Huda"})
	require.NoError(t, err)

	type pair struct{ admins, viewers []Record }
	ch := make(chan pair, 4)
	cancel, err := m.SubscribeUsers(func(admins, viewers []Record) {
		ch <- pair{admins, viewers}
	}, nil)
	require.NoError(t, err)
	defer cancel()

	select {
	case p := <-ch:
		require.Len(t, p.admins, 1)
		require.Len(t, p.viewers, 1)
		assert.Equal(t, "Ali", p.admins[0].Fields["name"])
		assert.Equal(t, "Huda", p.viewers[0].Fields["name"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for users snapshot")
	}
}
