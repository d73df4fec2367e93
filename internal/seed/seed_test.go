package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sijil-app/sijil/internal/store"
)

func TestRunSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory(nil)
	defer st.Close()

	n, err := Run(ctx, st, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	admins, viewers, err := st.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 2)
	assert.Len(t, viewers, 3)

	prisoners, err := st.Snapshot(ctx, store.Prisoners)
	require.NoError(t, err)
	assert.Len(t, prisoners, 2)

	released, err := st.Snapshot(ctx, store.Released)
	require.NoError(t, err)
	assert.Len(t, released, 2)
}

func TestRunSkipsWhenUsersExist(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory(nil)
	defer st.Close()

	_, err := st.Insert(ctx, store.UsersViewers, store.Document{"name": "موجود"})
	require.NoError(t, err)

	n, err := Run(ctx, st, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	prisoners, err := st.Snapshot(ctx, store.Prisoners)
	require.NoError(t, err)
	assert.Empty(t, prisoners)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory(nil)
	defer st.Close()

	_, err := Run(ctx, st, nil)
	require.NoError(t, err)

	n, err := Run(ctx, st, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	admins, _, err := st.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}
