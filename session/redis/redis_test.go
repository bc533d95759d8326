package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/session"
)

var _ core.SessionStore = (*Store)(nil)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestStore_Lifecycle(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, session.ErrNotFound)

	created, err := store.Create("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)

	require.NoError(t, store.AppendMessage("s1", core.NewMessage(core.RoleUser, "hello")))

	merged, err := store.MergeCriteria("s1", core.Criteria{Cuisine: "Thai"})
	require.NoError(t, err)
	assert.Equal(t, "Thai", merged.Cuisine)

	require.NoError(t, store.SetRestaurants("s1", []core.Restaurant{{ID: "1", Name: "Thai Garden"}}))

	got, err := store.Get("s1")
	require.NoError(t, err)
	assert.Len(t, got.Messages(), 1)
	assert.Equal(t, "Thai", got.CurrentCriteria().Cuisine)
	assert.Equal(t, "Thai Garden", got.Table()[0].Name)
}

func TestStore_CriteriaAccumulateAcrossWrites(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Create("s1")
	require.NoError(t, err)

	_, err = store.MergeCriteria("s1", core.Criteria{Area: "Soho"})
	require.NoError(t, err)
	merged, err := store.MergeCriteria("s1", core.Criteria{Cuisine: "Greek"})
	require.NoError(t, err)

	assert.Equal(t, "Soho", merged.Area)
	assert.Equal(t, "Greek", merged.Cuisine)
}

func TestStore_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, func(o *Options) { o.TTL = time.Minute })
	_, err := store.Create("s1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get("s1")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_MutationsOnMissingSession(t *testing.T) {
	store, _ := newTestStore(t)
	assert.ErrorIs(t, store.AppendMessage("missing", core.NewMessage(core.RoleUser, "x")), session.ErrNotFound)
}
