// Package fake provides in-memory fakes for repository interfaces for testing.
package fake

import (
	"context"
	"sort"
	"sync"

	"github.com/roamlog/api/internal/domain"
	"github.com/roamlog/api/internal/repository"
)

// PostRepository is an in-memory fake implementing repository.PostRepository.
// The mutex keeps the view-count increment safe under concurrent tests.
type PostRepository struct {
	mu   sync.Mutex
	byID map[string]domain.Post
}

// Option configures the fake repository.
type Option func(*PostRepository)

// WithItems seeds the repository with the provided posts (by ID).
func WithItems(items ...domain.Post) Option {
	return func(r *PostRepository) {
		for _, p := range items {
			r.byID[p.ID] = p
		}
	}
}

// NewPostRepository creates a new in-memory fake repo.
func NewPostRepository(opts ...Option) *PostRepository {
	r := &PostRepository{byID: make(map[string]domain.Post)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PostRepository) FindPublished(_ context.Context) ([]domain.Post, error) {
	return r.collect(func(p domain.Post) bool { return p.Published() }), nil
}

func (r *PostRepository) FindPublishedBySlug(_ context.Context, slug string) (domain.Post, error) {
	return r.one(func(p domain.Post) bool { return p.Slug == slug && p.Published() })
}

func (r *PostRepository) FindBySlug(_ context.Context, slug string) (domain.Post, error) {
	return r.one(func(p domain.Post) bool { return p.Slug == slug })
}

func (r *PostRepository) FindPublishedByTag(_ context.Context, tag string) ([]domain.Post, error) {
	return r.collect(func(p domain.Post) bool { return p.Published() && containsTag(p.Tags, tag) }), nil
}

func (r *PostRepository) Insert(_ context.Context, p domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *PostRepository) Replace(_ context.Context, id string, p domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = id
	r.byID[id] = p
	return nil
}

func (r *PostRepository) IncrementViewCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.byID[id]; ok {
		p.ViewCount++
		r.byID[id] = p
	}
	return nil
}

// Get returns the stored post by ID, for test assertions.
func (r *PostRepository) Get(id string) (domain.Post, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	return p, ok
}

func (r *PostRepository) collect(keep func(domain.Post) bool) []domain.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]domain.Post, 0, len(r.byID))
	for _, p := range r.byID {
		if keep(p) {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items
}

func (r *PostRepository) one(keep func(domain.Post) bool) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if keep(p) {
			return p, nil
		}
	}
	return domain.Post{}, repository.ErrNotFound
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

var _ repository.PostRepository = (*PostRepository)(nil)
