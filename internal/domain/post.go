// Package domain contains domain models for the application.
package domain

import (
	"errors"
	"time"
)

// PostDraft is the raw author submission a post is created from. It
// carries a publish intent instead of a publication timestamp; the
// factory turns the intent into PublishedAt.
type PostDraft struct {
	Author         string
	Title          string
	Summary        string
	ArticleContent string
	Tags           []string
	CoverPhoto     *Photo
	Photos         []Photo
	Location       Location
	Publish        bool
}

// Validate checks the draft's required fields. The post factory assumes
// a validated draft and performs no checks of its own.
func (d PostDraft) Validate() error {
	switch {
	case d.Author == "":
		return ErrAuthorRequired
	case d.Title == "":
		return ErrTitleRequired
	case d.Summary == "":
		return ErrSummaryRequired
	case d.ArticleContent == "":
		return ErrContentRequired
	}
	return nil
}

// Post is a blog post entity. PublishedAt is the sole publication
// signal: nil means draft, non-nil marks the moment of first
// publication. There is no separate boolean flag.
type Post struct {
	ID              string     `json:"id"`
	Slug            string     `json:"slug"`
	Tags            []string   `json:"tags"`
	Author          string     `json:"author"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	CoverPhoto      *Photo     `json:"cover_photo,omitempty"`
	Photos          []Photo    `json:"photos"`
	ArticleContent  string     `json:"article_content"` // markdown
	CreatedAt       time.Time  `json:"created_at"`
	EditedAt        *time.Time `json:"edited_at,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ViewCount       int        `json:"view_count"`
	Location        Location   `json:"location"`
	ReadTimeMinutes int        `json:"read_time_minutes"`
}

// Published reports whether the post is visible to readers.
func (p Post) Published() bool { return p.PublishedAt != nil }

// Photo is an image attached to a post. PublicURL is resolved by the
// upload collaborator before the photo reaches this service.
type Photo struct {
	ID        string `json:"id"`
	AltText   string `json:"alt_text"`
	PublicURL string `json:"public_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Location is the place a post was written about. ID stays empty until
// the post is persisted.
type Location struct {
	ID        string  `json:"id,omitempty"`
	Place     string  `json:"place"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreatePostRequestDTO represents the expected request body for creating a post.
type CreatePostRequestDTO struct {
	Author         string      `json:"author" binding:"required"`
	Title          string      `json:"title" binding:"required"`
	Summary        string      `json:"summary" binding:"required"`
	ArticleContent string      `json:"article_content" binding:"required"`
	Tags           []string    `json:"tags"`
	CoverPhoto     *PhotoDTO   `json:"cover_photo"`
	Photos         []PhotoDTO  `json:"photos"`
	Location       LocationDTO `json:"location" binding:"required"`
	Publish        bool        `json:"publish"`
}

// UpdatePostRequestDTO represents the expected request body for updating a post.
// The full post is replaced; the server only stamps EditedAt.
type UpdatePostRequestDTO struct {
	Slug            string      `json:"slug" binding:"required"`
	Author          string      `json:"author" binding:"required"`
	Title           string      `json:"title" binding:"required"`
	Summary         string      `json:"summary" binding:"required"`
	ArticleContent  string      `json:"article_content" binding:"required"`
	Tags            []string    `json:"tags"`
	CoverPhoto      *PhotoDTO   `json:"cover_photo"`
	Photos          []PhotoDTO  `json:"photos"`
	Location        LocationDTO `json:"location" binding:"required"`
	CreatedAt       time.Time   `json:"created_at" binding:"required"`
	PublishedAt     *time.Time  `json:"published_at"`
	ViewCount       int         `json:"view_count"`
	ReadTimeMinutes int         `json:"read_time_minutes"`
}

// PhotoDTO mirrors Photo on the wire.
type PhotoDTO struct {
	ID        string `json:"id"`
	AltText   string `json:"alt_text" binding:"required"`
	PublicURL string `json:"public_url" binding:"required"`
	Width     int    `json:"width" binding:"required"`
	Height    int    `json:"height" binding:"required"`
}

// LocationDTO mirrors Location on the wire.
type LocationDTO struct {
	ID        string  `json:"id"`
	Place     string  `json:"place" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreatePostResponseDTO returns the slug generated for a new post.
type CreatePostResponseDTO struct {
	Slug string `json:"slug"`
}

var (
	// ErrAuthorRequired is returned when a draft is missing its author.
	ErrAuthorRequired = errors.New("author required")
	// ErrTitleRequired is returned when a draft is missing its title.
	ErrTitleRequired = errors.New("title required")
	// ErrSummaryRequired is returned when a draft is missing its summary.
	ErrSummaryRequired = errors.New("summary required")
	// ErrContentRequired is returned when a draft has no article content.
	ErrContentRequired = errors.New("article content required")
)
