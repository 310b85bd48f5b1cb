package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource[T any] struct {
	items []T
	err   error
	calls atomic.Int32
}

func (s *fakeSource[T]) ListPublished(context.Context) ([]T, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func newFeed(cache Cache, fallback []domain.Testimonial) (*Feed, *fakeSource[domain.Testimonial], *fakeSource[domain.Project]) {
	ts := &fakeSource[domain.Testimonial]{items: []domain.Testimonial{{ID: "t1", Name: "Nimal", IsPublished: true}}}
	ps := &fakeSource[domain.Project]{items: []domain.Project{{ID: "p1", Name: "Gear", Media: []domain.Media{}}}}
	return New(ts, ps, cache, fallback, time.Minute), ts, ps
}

func TestFeed_CachesBackendResult(t *testing.T) {
	f, ts, _ := newFeed(NewMemoryCache(), nil)
	ctx := context.Background()

	res, err := f.Testimonials(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceBackend, res.Source)
	require.Len(t, res.Items, 1)

	res, err = f.Testimonials(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, "Nimal", res.Items[0].Name)
	assert.Equal(t, int32(1), ts.calls.Load())
}

func TestFeed_StaticFallback(t *testing.T) {
	static := []domain.Testimonial{{ID: "static-1", Name: "David", IsPublished: true}}
	f, ts, ps := newFeed(NewMemoryCache(), static)
	ts.err = errors.New("backend down")
	ps.err = errors.New("backend down")

	res, err := f.Testimonials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, res.Source)
	assert.Equal(t, static, res.Items)

	_, err = f.Projects(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFeed_CacheExpiry(t *testing.T) {
	cache := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	f, _, ps := newFeed(cache, nil)
	_, err := f.Projects(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	res, err := f.Projects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceBackend, res.Source)
	assert.Equal(t, int32(2), ps.calls.Load())
}

func TestFeed_Refresh(t *testing.T) {
	f, ts, ps := newFeed(NewMemoryCache(), nil)
	require.NoError(t, f.Refresh(context.Background()))
	assert.Equal(t, int32(1), ts.calls.Load())
	assert.Equal(t, int32(1), ps.calls.Load())

	ps.err = errors.New("boom")
	err := f.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cache := NewRedisCache(rdb)
	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx))
	assert.Equal(t, "redis", cache.Name())

	_, ok, err := cache.Get(ctx, "projects")
	require.NoError(t, err)
	assert.False(t, ok)

	f, _, ps := newFeed(cache, nil)
	_, err = f.Projects(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("fonova:feed:projects"))
	assert.Equal(t, time.Minute, mr.TTL("fonova:feed:projects"))

	res, err := f.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, res.Source)
	assert.Equal(t, int32(1), ps.calls.Load())
}

func TestRedisCache_DownFallsThroughToBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	f, _, _ := newFeed(NewRedisCache(rdb), nil)
	res, err := f.Projects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceBackend, res.Source)
}

func TestScheduler(t *testing.T) {
	_, err := NewScheduler(&Feed{}, "not a cron spec")
	assert.Error(t, err)

	f, ts, _ := newFeed(NewMemoryCache(), nil)
	s, err := NewScheduler(f, "@every 1h")
	require.NoError(t, err)

	s.Start()
	defer s.Stop()
	require.Eventually(t, func() bool { return ts.calls.Load() >= 1 }, time.Second, 10*time.Millisecond, "warm-up refresh runs at start")
}
