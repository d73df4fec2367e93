package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/store"
)

func seededStore(t *testing.T) *store.Memory {
	t.Helper()
	m := store.NewMemory(nil)
	t.Cleanup(func() { _ = m.Close() })
	ctx := context.Background()

	_, err := m.Insert(ctx, store.UsersAdmins, store.Document{"name": "Ali"})
	require.NoError(t, err)
	_, err = m.Insert(ctx, store.UsersViewers, store.Document{"name": "Huda"})
	require.NoError(t, err)
	// same name in both groups: admins must win
	_, err = m.Insert(ctx, store.UsersViewers, store.Document{"name": "Ali"})
	require.NoError(t, err)
	// stored with surrounding spaces, still matchable
	_, err = m.Insert(ctx, store.UsersViewers, store.Document{"name": " سمير "})
	require.NoError(t, err)

	return m
}

func newManager(t *testing.T, st store.Store) *Manager {
	t.Helper()
	return NewManager(st, "test-secret", time.Hour, nil)
}

func TestLogin(t *testing.T) {
	m := newManager(t, seededStore(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		wantRole records.Role
		wantErr  error
	}{
		{name: "exact admin", input: "Ali", wantRole: records.RoleAdmin},
		{name: "input trimmed", input: "  Ali ", wantRole: records.RoleAdmin},
		{name: "viewer", input: "Huda", wantRole: records.RoleViewer},
		{name: "stored name trimmed too", input: "سمير", wantRole: records.RoleViewer},
		{name: "case-sensitive", input: "ali", wantErr: ErrUnknownUser},
		{name: "unknown", input: "Nobody", wantErr: ErrUnknownUser},
		{name: "empty", input: "   ", wantErr: ErrUnknownUser},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess, token, err := m.Login(ctx, tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, sess)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, sess)
			assert.Equal(t, tc.wantRole, sess.Role)
			assert.True(t, sess.Authenticated)
			assert.NotEmpty(t, token)
		})
	}
}

func TestLogin_AdminsScannedBeforeViewers(t *testing.T) {
	m := newManager(t, seededStore(t))

	sess, _, err := m.Login(context.Background(), "Ali")
	require.NoError(t, err)
	assert.Equal(t, records.RoleAdmin, sess.Role)
}

type failingUsersStore struct {
	store.Store
}

func (f failingUsersStore) Users(ctx context.Context) ([]store.Record, []store.Record, error) {
	return nil, nil, errors.New("connection refused")
}

func TestLogin_StoreFailureSurfacesAsError(t *testing.T) {
	m := newManager(t, failingUsersStore{})

	sess, token, err := m.Login(context.Background(), "Ali")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownUser)
	assert.Nil(t, sess)
	assert.Empty(t, token)
}

func TestTokenRoundTrip(t *testing.T) {
	sess := &Session{Name: "Ali", Role: records.RoleAdmin, Authenticated: true}

	token, err := EncodeToken(sess, []byte("k"), time.Hour)
	require.NoError(t, err)

	got, err := DecodeToken(token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, sess, got)
}

func TestDecodeToken_Rejects(t *testing.T) {
	sess := &Session{Name: "Ali", Role: records.RoleAdmin, Authenticated: true}
	token, err := EncodeToken(sess, []byte("k"), time.Hour)
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := DecodeToken(token, []byte("other"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeToken("not-a-token", []byte("k"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := EncodeToken(sess, []byte("k"), -time.Minute)
		require.NoError(t, err)
		_, err = DecodeToken(old, []byte("k"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("bad role", func(t *testing.T) {
		bad, err := EncodeToken(&Session{Name: "x", Role: "root", Authenticated: true}, []byte("k"), time.Hour)
		require.NoError(t, err)
		_, err = DecodeToken(bad, []byte("k"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

// A session issued before its user was deleted keeps working: tokens are
// never re-checked against the store.
func TestStaleSessionOutlivesUserDeletion(t *testing.T) {
	st := seededStore(t)
	m := newManager(t, st)
	ctx := context.Background()

	sess, token, err := m.Login(ctx, "Huda")
	require.NoError(t, err)
	require.Equal(t, records.RoleViewer, sess.Role)

	// delete every user
	admins, viewers, err := st.Users(ctx)
	require.NoError(t, err)
	for _, rec := range append(admins, viewers...) {
		coll := store.UsersViewers
		if rec.Fields["name"] == "Ali" {
			coll = store.UsersAdmins
		}
		_ = st.Remove(ctx, coll, rec.ID)
	}

	got, err := m.Decode(token)
	require.NoError(t, err)
	assert.True(t, got.Authenticated)
	assert.Equal(t, "Huda", got.Name)
}
