package storage_test

import (
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kvBackends(t *testing.T) map[string]port.KVStore {
	t.Helper()

	lkv, err := storage.NewLevelKV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(lkv.Close)

	return map[string]port.KVStore{
		"Memory":  storage.NewMemoryKV(),
		"File":    storage.NewFileKV(afero.NewMemMapFs(), "/store.json"),
		"LevelDB": lkv,
	}
}

func TestKVStores(t *testing.T) {
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set("k", "v1"))
			v, ok, err := kv.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "v1", v)

			require.NoError(t, kv.Set("k", "v2"))
			v, _, err = kv.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Delete("k"))
			_, ok, err = kv.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileKVSurvivesReopen(t *testing.T) {
	fsys := afero.NewMemMapFs()

	first := storage.NewFileKV(fsys, "/store.json")
	require.NoError(t, first.Set("users", `{"a@b.c":{"name":"A"}}`))

	second := storage.NewFileKV(fsys, "/store.json")
	v, ok, err := second.Get("users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a@b.c":{"name":"A"}}`, v)
}

func TestMemoryRecords(t *testing.T) {
	t.Run("ExpiredRecordReadsAsAbsent", func(t *testing.T) {
		rs := storage.NewMemoryRecords()
		rs.Set("loggedInUser", "a@b.c", time.Now().Add(-time.Second))

		_, ok := rs.Get("loggedInUser")
		assert.False(t, ok)
	})

	t.Run("LiveRecord", func(t *testing.T) {
		rs := storage.NewMemoryRecords()
		rs.Set("loggedInUser", "a@b.c", time.Now().Add(time.Hour))

		v, ok := rs.Get("loggedInUser")
		require.True(t, ok)
		assert.Equal(t, "a@b.c", v)

		rs.Delete("loggedInUser")
		_, ok = rs.Get("loggedInUser")
		assert.False(t, ok)
	})
}

func TestUserDirectory(t *testing.T) {
	dir := storage.NewUserDirectory(storage.NewMemoryKV())

	users, err := dir.Users()
	require.NoError(t, err)
	assert.Empty(t, users)

	users["jane@example.com"] = domain.UserRecord{
		Name: "Jane Doe", PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, dir.SaveUsers(users))

	got, err := dir.Users()
	require.NoError(t, err)
	require.Contains(t, got, "jane@example.com")
	assert.Equal(t, "Jane Doe", got["jane@example.com"].Name)
}

func TestCartStore(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		s := storage.NewCartStore(storage.NewMemoryKV())

		entries, err := s.LoadCart("jane@example.com")
		require.NoError(t, err)
		assert.Empty(t, entries)

		want := []domain.CartEntry{{ProductID: 2, Quantity: 3}}
		require.NoError(t, s.SaveCart("jane@example.com", want))

		got, err := s.LoadCart("jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("IdentitiesAreIsolated", func(t *testing.T) {
		s := storage.NewCartStore(storage.NewMemoryKV())
		require.NoError(t, s.SaveCart("a@b.c", []domain.CartEntry{
			{ProductID: 1, Quantity: 1},
		}))

		entries, err := s.LoadCart("x@y.z")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("NilSavesAsEmpty", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		s := storage.NewCartStore(kv)
		require.NoError(t, s.SaveCart("a@b.c", nil))

		raw, ok, err := kv.Get("cart:a@b.c")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `[]`, raw)
	})
}

func TestSessionStore(t *testing.T) {
	s := storage.NewSessionStore(storage.NewMemoryRecords())

	_, ok := s.Identity()
	assert.False(t, ok)

	s.SetIdentity("jane@example.com", time.Now().Add(time.Hour))
	identity, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", identity)

	s.ClearIdentity()
	_, ok = s.Identity()
	assert.False(t, ok)
}
