package store

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContractTests exercises the Store contract shared by all backends.
func runContractTests(t *testing.T, kv Store) {
	ctx := context.Background()

	t.Run("get absent", func(t *testing.T) {
		_, err := kv.Get(ctx, "missing")
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("set get roundtrip", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "device:d1", `{"id":"d1"}`))
		v, err := kv.Get(ctx, "device:d1")
		require.NoError(t, err)
		assert.Equal(t, `{"id":"d1"}`, v)
	})

	t.Run("set is replace", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "device:d2", "a"))
		require.NoError(t, kv.Set(ctx, "device:d2", "b"))
		v, err := kv.Get(ctx, "device:d2")
		require.NoError(t, err)
		assert.Equal(t, "b", v)
	})

	t.Run("delete then get absent", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "device:d3", "x"))
		require.NoError(t, kv.Delete(ctx, "device:d3"))
		_, err := kv.Get(ctx, "device:d3")
		assert.Equal(t, ErrNotFound, err)
		// deleting an absent key is not an error
		assert.NoError(t, kv.Delete(ctx, "device:d3"))
	})

	t.Run("mset mget order and omission", func(t *testing.T) {
		require.NoError(t, kv.MSet(ctx, []Entry{
			{Key: "m:1", Value: "one"},
			{Key: "m:2", Value: "two"},
		}))
		values, err := kv.MGet(ctx, "m:2", "m:missing", "m:1")
		require.NoError(t, err)
		assert.Equal(t, []string{"two", "one"}, values)
	})

	t.Run("scan by prefix", func(t *testing.T) {
		require.NoError(t, kv.MSet(ctx, []Entry{
			{Key: "check:2025:10:d1", Value: "a"},
			{Key: "check:2025:10:d2", Value: "b"},
			{Key: "check:2025:1:d1", Value: "c"},
			{Key: "check:2025:11:d1", Value: "d"},
			{Key: "plan:2025:10", Value: "e"},
		}))
		entries, err := kv.ScanPrefix(ctx, "check:2025:10:")
		require.NoError(t, err)

		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		sort.Strings(keys)
		assert.Equal(t, []string{"check:2025:10:d1", "check:2025:10:d2"}, keys)

		// unpadded week 1 must not swallow week 10/11
		entries, err = kv.ScanPrefix(ctx, "check:2025:1:")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "check:2025:1:d1", entries[0].Key)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	runContractTests(t, NewMemoryStore())
}

func TestRedisStore_Contract(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	runContractTests(t, NewRedisStore(client))
}

func TestRedisStore_ScanPaginates(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewRedisStore(client)
	ctx := context.Background()

	// more keys than one SCAN page
	entries := make([]Entry, 0, 500)
	for i := 0; i < 500; i++ {
		entries = append(entries, Entry{Key: fmt.Sprintf("check:2025:10:dev-%03d", i), Value: "v"})
	}
	require.NoError(t, kv.MSet(ctx, entries))

	got, err := kv.ScanPrefix(ctx, "check:2025:10:")
	require.NoError(t, err)
	assert.Len(t, got, len(entries))
}
