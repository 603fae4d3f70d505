package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"list.default_sort": "type"}
	store := NewConfigStore(seed)

	assert.Equal(t, "type", store.GetString("list.default_sort"))
	assert.Equal(t, 0, store.Writes())

	seed["list.default_sort"] = "receivedAt"
	assert.Equal(t, "type", store.GetString("list.default_sort"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("list.default_sort", "type"))
	require.NoError(t, store.Set("list.expand_comments", true))

	assert.Equal(t, "type", store.GetString("list.default_sort"))
	assert.True(t, store.GetBool("list.expand_comments"))

	assert.Empty(t, store.GetString("list.expand_comments"))
	assert.False(t, store.GetBool("list.default_sort"))
	assert.Empty(t, store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SetAllIsOneWrite(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.SetAll(map[string]any{
		"list.default_sort":      "type",
		"list.default_ascending": false,
	}))

	assert.Equal(t, 1, store.Writes())
	assert.Equal(t, map[string]any{
		"list.default_sort":      "type",
		"list.default_ascending": false,
	}, store.Snapshot())
}

func TestConfigStore_FailWrites(t *testing.T) {
	store := NewConfigStore(map[string]any{"storage.data_dir": "/data"})
	boom := errors.New("disk full")
	store.FailWrites(boom)

	err := store.SetAll(map[string]any{"storage.data_dir": "/other", "list.default_sort": "type"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "/data", store.GetString("storage.data_dir"))
	_, ok := store.Get("list.default_sort")
	assert.False(t, ok)

	store.FailWrites(nil)
	require.NoError(t, store.Set("storage.data_dir", "/other"))
	assert.Equal(t, "/other", store.GetString("storage.data_dir"))
}

func TestConfigStore_SnapshotIsCopy(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("a", "b"))

	snap := store.Snapshot()
	snap["a"] = "changed"

	assert.Equal(t, "b", store.GetString("a"))
}

func TestConfigStore_Path(t *testing.T) {
	assert.Empty(t, NewConfigStore().Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("list.expand_comments", true)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetBool("list.expand_comments")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Writes())
	assert.True(t, store.GetBool("list.expand_comments"))
}
