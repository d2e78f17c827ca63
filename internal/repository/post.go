// PostRepository defines methods for post data access.
package repository

import (
	"context"
	"errors"

	"github.com/roamlog/api/internal/domain"
)

// ErrNotFound is returned when no matching document exists. It is
// distinct from infrastructure failures, which are propagated as-is.
var ErrNotFound = errors.New("not found")

// PostRepository is the persistence contract for posts. The published
// variants apply the reader visibility filter (PublishedAt present);
// FindBySlug does not, so the authoring path can see its own drafts.
type PostRepository interface {
	FindPublished(ctx context.Context) ([]domain.Post, error)
	FindPublishedBySlug(ctx context.Context, slug string) (domain.Post, error)
	FindBySlug(ctx context.Context, slug string) (domain.Post, error)
	FindPublishedByTag(ctx context.Context, tag string) ([]domain.Post, error)
	Insert(ctx context.Context, p domain.Post) error
	Replace(ctx context.Context, id string, p domain.Post) error
	IncrementViewCount(ctx context.Context, id string) error
}
