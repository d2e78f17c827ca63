// Package postgres provides a Postgres-backed implementation of the post repository.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roamlog/api/internal/domain"
	"github.com/roamlog/api/internal/repository"
	"github.com/roamlog/api/pkg/logger"
)

// PostRepository implements repository.PostRepository using Postgres.
// Photos, cover photo, and location are stored as JSONB documents.
type PostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new Postgres-backed post repository.
func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// EnsureSchema creates required tables if they don't exist.
func (r *PostRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL,
    tags JSONB NOT NULL DEFAULT '[]'::jsonb,
    author TEXT NOT NULL,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    cover_photo JSONB NULL,
    photos JSONB NOT NULL DEFAULT '[]'::jsonb,
    article_content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    edited_at TIMESTAMPTZ NULL,
    published_at TIMESTAMPTZ NULL,
    view_count BIGINT NOT NULL DEFAULT 0,
    location JSONB NOT NULL,
    read_time_minutes INT NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_slug ON posts (slug);
CREATE INDEX IF NOT EXISTS idx_posts_published_at ON posts (published_at);
-- GIN index helps the tag membership query
CREATE INDEX IF NOT EXISTS idx_posts_tags_gin ON posts USING GIN (tags);
`
	_, err := r.pool.Exec(ctx, schema)
	if err != nil {
		return err
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

const postColumns = `id, slug, tags, author, title, summary, cover_photo, photos,
article_content, created_at, edited_at, published_at, view_count, location, read_time_minutes`

// Insert adds a new post to Postgres.
func (r *PostRepository) Insert(ctx context.Context, p domain.Post) error {
	tagsJSON, coverJSON, photosJSON, locationJSON, err := marshalDocs(p)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO posts (` + postColumns + `)
VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7::jsonb, $8::jsonb, $9, $10, $11, $12, $13, $14::jsonb, $15)
`
	_, err = r.pool.Exec(ctx, q,
		p.ID, p.Slug, tagsJSON, p.Author, p.Title, p.Summary, coverJSON, photosJSON,
		p.ArticleContent, p.CreatedAt, p.EditedAt, p.PublishedAt, p.ViewCount, locationJSON, p.ReadTimeMinutes)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// Replace overwrites the whole row with the given id. No existence
// check; replacing a missing id affects zero rows and is not an error.
func (r *PostRepository) Replace(ctx context.Context, id string, p domain.Post) error {
	tagsJSON, coverJSON, photosJSON, locationJSON, err := marshalDocs(p)
	if err != nil {
		return err
	}
	const q = `
UPDATE posts SET slug = $2, tags = $3::jsonb, author = $4, title = $5, summary = $6,
cover_photo = $7::jsonb, photos = $8::jsonb, article_content = $9, created_at = $10,
edited_at = $11, published_at = $12, view_count = $13, location = $14::jsonb, read_time_minutes = $15
WHERE id = $1
`
	_, err = r.pool.Exec(ctx, q,
		id, p.Slug, tagsJSON, p.Author, p.Title, p.Summary, coverJSON, photosJSON,
		p.ArticleContent, p.CreatedAt, p.EditedAt, p.PublishedAt, p.ViewCount, locationJSON, p.ReadTimeMinutes)
	if err != nil {
		return fmt.Errorf("replace post: %w", err)
	}
	return nil
}

// IncrementViewCount bumps view_count atomically in a single UPDATE.
func (r *PostRepository) IncrementViewCount(ctx context.Context, id string) error {
	const q = `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// FindPublished returns all published posts.
func (r *PostRepository) FindPublished(ctx context.Context) ([]domain.Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE published_at IS NOT NULL`
	return r.queryPosts(ctx, q)
}

// FindPublishedBySlug returns the published post with the given slug.
func (r *PostRepository) FindPublishedBySlug(ctx context.Context, slug string) (domain.Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND published_at IS NOT NULL`
	return r.queryPost(ctx, q, slug)
}

// FindBySlug returns the post with the given slug regardless of
// publication state. Authoring paths only.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (domain.Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	return r.queryPost(ctx, q, slug)
}

// FindPublishedByTag returns published posts carrying the tag.
func (r *PostRepository) FindPublishedByTag(ctx context.Context, tag string) ([]domain.Post, error) {
	// tags @> '["tag"]'::jsonb
	const q = `SELECT ` + postColumns + ` FROM posts WHERE published_at IS NOT NULL AND tags @> $1::jsonb`
	tagJSON, _ := json.Marshal([]string{tag})
	return r.queryPosts(ctx, q, string(tagJSON))
}

func (r *PostRepository) queryPosts(ctx context.Context, q string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()
	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

func (r *PostRepository) queryPost(ctx context.Context, q string, args ...any) (domain.Post, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return domain.Post{}, fmt.Errorf("query post: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if rows.Err() != nil {
			return domain.Post{}, rows.Err()
		}
		return domain.Post{}, repository.ErrNotFound
	}
	return scanPost(rows)
}

func scanPost(rows pgx.Rows) (domain.Post, error) {
	var (
		p            domain.Post
		tagsRaw      []byte
		coverRaw     []byte
		photosRaw    []byte
		locationRaw  []byte
		editedPtr    *time.Time
		publishedPtr *time.Time
	)
	err := rows.Scan(&p.ID, &p.Slug, &tagsRaw, &p.Author, &p.Title, &p.Summary, &coverRaw, &photosRaw,
		&p.ArticleContent, &p.CreatedAt, &editedPtr, &publishedPtr, &p.ViewCount, &locationRaw, &p.ReadTimeMinutes)
	if err != nil {
		return domain.Post{}, fmt.Errorf("scan post: %w", err)
	}
	p.EditedAt = editedPtr
	p.PublishedAt = publishedPtr
	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &p.Tags); err != nil {
			return domain.Post{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if len(coverRaw) > 0 {
		var cover domain.Photo
		if err := json.Unmarshal(coverRaw, &cover); err != nil {
			return domain.Post{}, fmt.Errorf("unmarshal cover photo: %w", err)
		}
		p.CoverPhoto = &cover
	}
	if len(photosRaw) > 0 {
		if err := json.Unmarshal(photosRaw, &p.Photos); err != nil {
			return domain.Post{}, fmt.Errorf("unmarshal photos: %w", err)
		}
	}
	if len(locationRaw) > 0 {
		if err := json.Unmarshal(locationRaw, &p.Location); err != nil {
			return domain.Post{}, fmt.Errorf("unmarshal location: %w", err)
		}
	}
	return p, nil
}

// marshalDocs renders the JSONB columns. cover is nil (SQL NULL) when
// the post has no cover photo.
func marshalDocs(p domain.Post) (tags string, cover any, photos, location string, err error) {
	tagsB, err := json.Marshal(orEmpty(p.Tags))
	if err != nil {
		return "", nil, "", "", fmt.Errorf("marshal tags: %w", err)
	}
	if p.CoverPhoto != nil {
		coverB, err := json.Marshal(p.CoverPhoto)
		if err != nil {
			return "", nil, "", "", fmt.Errorf("marshal cover photo: %w", err)
		}
		cover = string(coverB)
	}
	photosB, err := json.Marshal(orEmpty(p.Photos))
	if err != nil {
		return "", nil, "", "", fmt.Errorf("marshal photos: %w", err)
	}
	locationB, err := json.Marshal(p.Location)
	if err != nil {
		return "", nil, "", "", fmt.Errorf("marshal location: %w", err)
	}
	return string(tagsB), cover, string(photosB), string(locationB), nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var _ repository.PostRepository = (*PostRepository)(nil)
