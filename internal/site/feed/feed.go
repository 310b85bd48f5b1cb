package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/logging"
)

const (
	KeyTestimonials = "testimonials"
	KeyProjects     = "projects"

	DefaultTTL = 15 * time.Minute
)

// Where a feed response came from.
const (
	SourceCache   = "cache"
	SourceBackend = "backend"
	SourceStatic  = "static"
)

var ErrUnavailable = errors.New("feed unavailable")

// Source lists the published items of one backend collection.
type Source[T any] interface {
	ListPublished(ctx context.Context) ([]T, error)
}

type Result[T any] struct {
	Items  []T    `json:"items"`
	Source string `json:"source"`
}

// Feed serves the published testimonials and projects of the backend
// through a cache.
type Feed struct {
	testimonials Source[domain.Testimonial]
	projects     Source[domain.Project]
	cache        Cache
	fallback     []domain.Testimonial
	ttl          time.Duration
}

func New(testimonials Source[domain.Testimonial], projects Source[domain.Project], cache Cache, fallback []domain.Testimonial, ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Feed{
		testimonials: testimonials,
		projects:     projects,
		cache:        cache,
		fallback:     fallback,
		ttl:          ttl,
	}
}

func (f *Feed) Cache() Cache {
	return f.cache
}

// Testimonials falls back to the static testimonials of the site content
// when neither the cache nor the backend can answer.
func (f *Feed) Testimonials(ctx context.Context) (Result[domain.Testimonial], error) {
	res, err := load(ctx, f, KeyTestimonials, f.testimonials)
	if err != nil && len(f.fallback) > 0 {
		logging.NewLogger(ctx).LogWarnf("feed_testimonials", "serving static testimonials: %v", err)
		return Result[domain.Testimonial]{Items: f.fallback, Source: SourceStatic}, nil
	}
	return res, err
}

func (f *Feed) Projects(ctx context.Context) (Result[domain.Project], error) {
	return load(ctx, f, KeyProjects, f.projects)
}

// Refresh re-fetches both collections into the cache.
func (f *Feed) Refresh(ctx context.Context) error {
	_, errT := fetch(ctx, f, KeyTestimonials, f.testimonials)
	_, errP := fetch(ctx, f, KeyProjects, f.projects)
	return errors.Join(errT, errP)
}

func load[T any](ctx context.Context, f *Feed, key string, src Source[T]) (Result[T], error) {
	logger := logging.NewLogger(ctx)

	raw, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		logger.LogError("feed_cache_get", err)
	}
	if ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			return Result[T]{Items: items, Source: SourceCache}, nil
		}
		logger.LogWarnf("feed_cache_get", "discarding undecodable %s snapshot", key)
	}

	items, err := fetch(ctx, f, key, src)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Items: items, Source: SourceBackend}, nil
}

func fetch[T any](ctx context.Context, f *Feed, key string, src Source[T]) ([]T, error) {
	logger := logging.NewLogger(ctx)

	items, err := src.ListPublished(ctx)
	if err != nil {
		logger.LogError("feed_fetch "+key, err)
		return nil, errors.Join(ErrUnavailable, err)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Set(ctx, key, raw, f.ttl); err != nil {
		logger.LogError("feed_cache_set", err)
	}
	return items, nil
}
