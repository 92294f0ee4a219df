package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/slokas/internal/config"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	sqlStore, err := OpenSQLStore(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)

	badgerStore, err := OpenBadgerStore("")
	require.NoError(t, err)

	diskBadger, err := OpenBadgerStore(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)

	stores := map[string]Backend{
		"sqlite":        sqlStore,
		"badger-memory": badgerStore,
		"badger-disk":   diskBadger,
		"memory":        NewMemoryStore(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestBackends(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("absent key", func(t *testing.T) {
				v, ok, err := store.Get(ctx, "missing")
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Empty(t, v)
			})

			t.Run("set then get", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "favorites", `[{"id":"2.47"}]`))

				v, ok, err := store.Get(ctx, "favorites")
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, `[{"id":"2.47"}]`, v)
			})

			t.Run("overwrite", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "readSlokas", `["1.1"]`))
				require.NoError(t, store.Set(ctx, "readSlokas", `[]`))

				v, _, err := store.Get(ctx, "readSlokas")
				require.NoError(t, err)
				assert.Equal(t, `[]`, v)
			})

			t.Run("empty value is present", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "empty", ""))

				_, ok, err := store.Get(ctx, "empty")
				require.NoError(t, err)
				assert.True(t, ok)
			})

			t.Run("remove", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "gone", "x"))
				require.NoError(t, store.Remove(ctx, "gone"))

				_, ok, err := store.Get(ctx, "gone")
				require.NoError(t, err)
				assert.False(t, ok)

				assert.NoError(t, store.Remove(ctx, "never-set"))
			})

			t.Run("set all", func(t *testing.T) {
				err := SetAll(ctx, store, map[string]string{
					"lastVisitDate":       `"2026-10-14"`,
					"currentDailyVerseId": `"4.7"`,
				})
				require.NoError(t, err)

				date, _, _ := store.Get(ctx, "lastVisitDate")
				id, _, _ := store.Get(ctx, "currentDailyVerseId")
				assert.Equal(t, `"2026-10-14"`, date)
				assert.Equal(t, `"4.7"`, id)
			})

			t.Run("ping", func(t *testing.T) {
				assert.NoError(t, store.Ping(ctx))
			})
		})
	}
}

func TestSetAll_Fallback(t *testing.T) {
	mem := NewMemoryStore()
	// Embedding only the Store interface hides SetMany.
	var store Store = struct{ Store }{mem}

	_, isBatch := store.(BatchStore)
	require.False(t, isBatch)

	require.NoError(t, SetAll(context.Background(), store, map[string]string{"a": "1", "b": "2"}))
	assert.Equal(t, 2, mem.Writes())

	mem.FailWrites(errors.New("disk full"))
	err := SetAll(context.Background(), store, map[string]string{"c": "3"})
	assert.ErrorContains(t, err, "disk full")
}

func TestMemoryStore_FailureInjection(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	boom := errors.New("boom")

	store.FailWrites(boom)
	assert.ErrorIs(t, store.Set(ctx, "k", "v"), boom)
	assert.ErrorIs(t, store.Remove(ctx, "k"), boom)

	store.FailWrites(nil)
	require.NoError(t, store.Set(ctx, "k", "v"))

	store.FailReads(boom)
	_, _, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
}

func TestOpen(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		store, err := Open(config.Storage{Backend: config.StorageBackendMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("sqlite backend", func(t *testing.T) {
		store, err := Open(config.Storage{
			Backend:      config.StorageBackendSQLite,
			DatabasePath: filepath.Join(t.TempDir(), "open.db"),
		})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &SQLStore{}, store)
	})

	t.Run("badger backend", func(t *testing.T) {
		store, err := Open(config.Storage{
			Backend:   config.StorageBackendBadger,
			BadgerDir: filepath.Join(t.TempDir(), "badger"),
		})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &BadgerStore{}, store)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(config.Storage{Backend: "redis"})
		assert.ErrorIs(t, err, ErrUnknownBackend)
	})
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	ctx := context.Background()

	store, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "visitedSlokas", `["1.1"]`))
	require.NoError(t, store.Close())

	reopened, err := OpenBadgerStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "visitedSlokas")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["1.1"]`, v)
}

func TestSQLStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := OpenSQLStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "favorites", `[]`))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}
