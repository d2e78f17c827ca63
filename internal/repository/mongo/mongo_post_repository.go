// Package mongo provides the MongoDB-backed implementation of the post repository.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/roamlog/api/internal/domain"
	"github.com/roamlog/api/internal/repository"
)

// postsCollection is the collection posts live in.
const postsCollection = "posts"

// PostRepository implements repository.PostRepository using MongoDB.
type PostRepository struct {
	coll *mongodrv.Collection
}

// NewPostRepository creates a new MongoDB-backed post repository.
func NewPostRepository(db *mongodrv.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

// publishedOnly is the reader visibility predicate: a post is public
// only once published_at is set. Composed with AND into every
// reader-facing query so drafts cannot leak through slug or tag lookups.
func publishedOnly() bson.M {
	return bson.M{"published_at": bson.M{"$ne": nil}}
}

// FindPublished returns all published posts.
func (r *PostRepository) FindPublished(ctx context.Context) ([]domain.Post, error) {
	return r.find(ctx, publishedOnly())
}

// FindPublishedBySlug returns the published post with the given slug.
func (r *PostRepository) FindPublishedBySlug(ctx context.Context, slug string) (domain.Post, error) {
	filter := publishedOnly()
	filter["slug"] = slug
	return r.findOne(ctx, filter)
}

// FindBySlug returns the post with the given slug regardless of
// publication state. Authoring paths only.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (domain.Post, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

// FindPublishedByTag returns published posts carrying the tag. A plain
// equality on an array field matches any element.
func (r *PostRepository) FindPublishedByTag(ctx context.Context, tag string) ([]domain.Post, error) {
	filter := publishedOnly()
	filter["tags"] = tag
	return r.find(ctx, filter)
}

// Insert stores a new post document.
func (r *PostRepository) Insert(ctx context.Context, p domain.Post) error {
	doc, err := toDocument(p)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// Replace overwrites the whole document with the given id. No
// existence check; replacing a missing id is a no-op.
func (r *PostRepository) Replace(ctx context.Context, id string, p domain.Post) error {
	doc, err := toDocument(p)
	if err != nil {
		return err
	}
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc); err != nil {
		return fmt.Errorf("replace post: %w", err)
	}
	return nil
}

// IncrementViewCount bumps view_count by one with the store's atomic
// $inc, keyed by the typed field, never read-modify-write.
func (r *PostRepository) IncrementViewCount(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	update := bson.M{"$inc": bson.M{"view_count": 1}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]domain.Post, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

func (r *PostRepository) findOne(ctx context.Context, filter bson.M) (domain.Post, error) {
	var doc postDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return domain.Post{}, repository.ErrNotFound
		}
		return domain.Post{}, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
