package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restyhq/resty/core"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStore_Lifecycle(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := store.Create("s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", created.ID)

	require.NoError(t, store.AppendMessage("s1", core.NewMessage(core.RoleUser, "hello")))

	merged, err := store.MergeCriteria("s1", core.Criteria{Area: "Soho"})
	require.NoError(t, err)
	assert.Equal(t, "Soho", merged.Area)

	require.NoError(t, store.SetRestaurants("s1", []core.Restaurant{{ID: "1"}}))

	got, err := store.Get("s1")
	require.NoError(t, err)
	assert.Len(t, got.Messages(), 1)
	assert.Equal(t, "Soho", got.CurrentCriteria().Area)
	assert.Len(t, got.Table(), 1)
}

func TestInMemoryStore_GetReturnsClone(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Create("s1")
	require.NoError(t, err)

	got, err := store.Get("s1")
	require.NoError(t, err)
	got.AppendMessage(core.NewMessage(core.RoleUser, "local only"))

	again, err := store.Get("s1")
	require.NoError(t, err)
	assert.Empty(t, again.Messages())
}

func TestInMemoryStore_MutationsOnMissingSession(t *testing.T) {
	store := NewInMemoryStore()

	assert.ErrorIs(t, store.AppendMessage("missing", core.NewMessage(core.RoleUser, "x")), ErrNotFound)
	_, err := store.MergeCriteria("missing", core.Criteria{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.SetRestaurants("missing", nil), ErrNotFound)
}
