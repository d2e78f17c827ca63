// Package cached provides a caching wrapper over a primary repository using Redis.
package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/roamlog/api/internal/domain"
	"github.com/roamlog/api/internal/repository"
)

// key helpers
func keySlug(slug string) string { return "post:slug:" + slug }
func keyPublished() string       { return "posts:published" }
func keyTag(tag string) string   { return "posts:tag:" + tag }

// PostRepository is a cache-aside repository combining Redis with a
// primary store. Only reader-facing (published) queries are cached;
// the authoring slug lookup always hits the primary so a fresh draft
// is never masked by stale cache.
type PostRepository struct {
	primary repository.PostRepository
	redis   *redis.Client
	ttl     time.Duration
}

// NewPostRepository creates a new cached repository.
func NewPostRepository(primary repository.PostRepository, redis *redis.Client, ttl time.Duration) *PostRepository {
	return &PostRepository{primary: primary, redis: redis, ttl: ttl}
}

// FindPublished caches the full published list.
func (r *PostRepository) FindPublished(ctx context.Context) ([]domain.Post, error) {
	return r.cachedList(ctx, keyPublished(), func() ([]domain.Post, error) {
		return r.primary.FindPublished(ctx)
	})
}

// FindPublishedBySlug attempts Redis then falls back to primary.
func (r *PostRepository) FindPublishedBySlug(ctx context.Context, slug string) (domain.Post, error) {
	if val, err := r.redis.Get(ctx, keySlug(slug)).Result(); err == nil && val != "" {
		var p domain.Post
		if jsonErr := json.Unmarshal([]byte(val), &p); jsonErr == nil {
			return p, nil
		}
	}
	p, err := r.primary.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return domain.Post{}, err
	}
	if data, err := json.Marshal(p); err == nil {
		_ = r.redis.Set(ctx, keySlug(slug), data, r.ttl).Err()
	}
	return p, nil
}

// FindBySlug is the authoring lookup; it bypasses the cache entirely.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (domain.Post, error) {
	return r.primary.FindBySlug(ctx, slug)
}

// FindPublishedByTag caches per tag.
func (r *PostRepository) FindPublishedByTag(ctx context.Context, tag string) ([]domain.Post, error) {
	return r.cachedList(ctx, keyTag(tag), func() ([]domain.Post, error) {
		return r.primary.FindPublishedByTag(ctx, tag)
	})
}

// Insert writes through to primary and busts read caches best-effort.
func (r *PostRepository) Insert(ctx context.Context, p domain.Post) error {
	if err := r.primary.Insert(ctx, p); err != nil {
		return err
	}
	_ = r.invalidate(ctx)
	return nil
}

// Replace writes through to primary and busts read caches best-effort.
func (r *PostRepository) Replace(ctx context.Context, id string, p domain.Post) error {
	if err := r.primary.Replace(ctx, id, p); err != nil {
		return err
	}
	_ = r.invalidate(ctx)
	return nil
}

// IncrementViewCount passes through to the primary's atomic increment.
// Cached copies of the post go stale on view count only until they
// expire or the next write busts them; that is accepted.
func (r *PostRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.primary.IncrementViewCount(ctx, id)
}

func (r *PostRepository) cachedList(ctx context.Context, k string, load func() ([]domain.Post, error)) ([]domain.Post, error) {
	if val, err := r.redis.Get(ctx, k).Result(); err == nil && val != "" {
		var items []domain.Post
		if jsonErr := json.Unmarshal([]byte(val), &items); jsonErr == nil {
			return items, nil
		}
	}
	items, err := load()
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(items); err == nil {
		_ = r.redis.Set(ctx, k, data, r.ttl).Err()
	}
	return items, nil
}

// invalidate scan-and-deletes every read-cache key.
func (r *PostRepository) invalidate(ctx context.Context) error {
	for _, pattern := range []string{"posts:*", "post:slug:*"} {
		var cursor uint64
		for {
			keys, next, err := r.redis.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return err
			}
			if len(keys) > 0 {
				_ = r.redis.Del(ctx, keys...).Err()
			}
			if next == 0 {
				break
			}
			cursor = next
		}
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
