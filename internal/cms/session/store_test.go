package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "empty store loads nothing")

	want := domain.StoredSession{Token: "tok-1", User: json.RawMessage(`{"username":"admin"}`)}
	require.NoError(t, store.Save(ctx, want))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Token, got.Token)
	assert.JSONEq(t, string(want.User), string(got.User))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx), "clearing twice is fine")

	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)
	exerciseStore(t, store)

	require.NoError(t, store.Save(context.Background(), domain.StoredSession{Token: "tok-2"}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SurvivesNewInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewFileStore(path).Save(context.Background(), domain.StoredSession{Token: "persisted"}))

	got, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "persisted", got.Token)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisStore(t *testing.T) {
	_, rdb := setupRedis(t)
	exerciseStore(t, NewRedisStore(rdb, ""))
}

func TestRedisStore_TTLFollowsTokenExpiry(t *testing.T) {
	mr, rdb := setupRedis(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	store := NewRedisStore(rdb, "test:session")
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), domain.StoredSession{Token: signedToken(t, now.Add(30*time.Minute))}))
	assert.True(t, mr.Exists("test:session"))
	assert.Equal(t, 30*time.Minute, mr.TTL("test:session"))

	require.NoError(t, store.Save(context.Background(), domain.StoredSession{Token: "opaque"}))
	assert.Equal(t, time.Duration(0), mr.TTL("test:session"), "opaque tokens do not expire")

	require.NoError(t, store.Save(context.Background(), domain.StoredSession{Token: signedToken(t, now.Add(-time.Second))}))
	assert.False(t, mr.Exists("test:session"), "an already expired token is not stored")
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()

	_, err := NewRedisStore(rdb, "").Load(context.Background())
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	got, ok := TokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("not-a-jwt")
	assert.False(t, ok)

	_, ok = TokenExpiry("")
	assert.False(t, ok)
}
