// Package service contains business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/roamlog/api/internal/domain"
	"github.com/roamlog/api/internal/repository"
)

// Error variables
var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidDraft = errors.New("invalid draft")
)

// IDGenerator produces a new unique identifier. The default emits
// ObjectID hex so identifiers survive the trip into the store's native
// ID type without loss.
type IDGenerator func() string

func generateID() string {
	return primitive.NewObjectID().Hex()
}

// Service provides post-related business logic.
type Service struct {
	repo  repository.PostRepository
	clock Clock
	newID IDGenerator
}

// NewService creates a new Service with the given PostRepository and Clock.
func NewService(repo repository.PostRepository, clock Clock) *Service {
	return NewServiceWithOptions(repo, clock)
}

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator overrides the identifier source used by the factory.
func WithIDGenerator(f IDGenerator) Option {
	return func(s *Service) { s.newID = f }
}

// NewServiceWithOptions creates a Service with optional overrides.
func NewServiceWithOptions(repo repository.PostRepository, clock Clock, opts ...Option) *Service {
	s := &Service{repo: repo, clock: clock, newID: generateID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewPost is the post factory: it turns a validated draft into a
// canonical Post. Pure apart from the injected clock and ID source:
// slug and read time are computed here, once, and never again.
func (s *Service) NewPost(draft domain.PostDraft) domain.Post {
	now := s.clock.Now()

	photos := make([]domain.Photo, len(draft.Photos))
	copy(photos, draft.Photos)
	for i := range photos {
		if photos[i].ID == "" {
			photos[i].ID = s.newID()
		}
	}
	var cover *domain.Photo
	if draft.CoverPhoto != nil {
		c := *draft.CoverPhoto
		if c.ID == "" {
			c.ID = s.newID()
		}
		cover = &c
	}

	var publishedAt *time.Time
	if draft.Publish {
		t := now
		publishedAt = &t
	}

	return domain.Post{
		ID:              s.newID(),
		Slug:            Slugify(draft.Title),
		Tags:            draft.Tags,
		Author:          draft.Author,
		Title:           draft.Title,
		Summary:         draft.Summary,
		CoverPhoto:      cover,
		Photos:          photos,
		ArticleContent:  draft.ArticleContent,
		CreatedAt:       now,
		PublishedAt:     publishedAt,
		ViewCount:       0,
		Location:        draft.Location,
		ReadTimeMinutes: EstimateReadTime(draft.ArticleContent),
	}
}

// CreatePost validates the draft, builds the canonical post, stores it,
// and returns the generated slug.
func (s *Service) CreatePost(ctx context.Context, draft domain.PostDraft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	post := s.NewPost(draft)
	if err := s.repo.Insert(ctx, post); err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	return post.Slug, nil
}

// GetPublishedPosts returns every published post.
func (s *Service) GetPublishedPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.FindPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("find published: %w", err)
	}
	return posts, nil
}

// GetPostBySlug is the public lookup: drafts are invisible here.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (domain.Post, error) {
	post, err := s.repo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("find by slug: %w", err)
	}
	return post, nil
}

// LookupPostBySlug is the authoring lookup: it sees drafts too, so an
// author can confirm a just-created unpublished post.
func (s *Service) LookupPostBySlug(ctx context.Context, slug string) (domain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, fmt.Errorf("find by slug: %w", err)
	}
	return post, nil
}

// GetPostsByTag returns published posts carrying the tag.
func (s *Service) GetPostsByTag(ctx context.Context, tag string) ([]domain.Post, error) {
	posts, err := s.repo.FindPublishedByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("find by tag: %w", err)
	}
	return posts, nil
}

// UpdatePost replaces the stored post and stamps EditedAt. Slug and
// read time are intentionally left as created; they are never
// recomputed from an edited title or article.
func (s *Service) UpdatePost(ctx context.Context, id string, post domain.Post) error {
	now := s.clock.Now()
	post.EditedAt = &now
	if err := s.repo.Replace(ctx, id, post); err != nil {
		return fmt.Errorf("replace post: %w", err)
	}
	return nil
}

// IncrementViewCount bumps the post's view counter by one via the
// store's atomic increment, never read-modify-write.
func (s *Service) IncrementViewCount(ctx context.Context, id string) error {
	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}
