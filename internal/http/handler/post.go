// Package handler provides HTTP handler functions for the Roamlog API.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roamlog/api/internal/domain"
	"github.com/roamlog/api/internal/service"
	"github.com/roamlog/api/pkg/logger"
)

// PostService defines the handler's dependency contract.
type PostService interface {
	GetPublishedPosts(ctx context.Context) ([]domain.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (domain.Post, error)
	GetPostsByTag(ctx context.Context, tag string) ([]domain.Post, error)
	CreatePost(ctx context.Context, draft domain.PostDraft) (string, error)
	UpdatePost(ctx context.Context, id string, post domain.Post) error
	IncrementViewCount(ctx context.Context, id string) error
}

// Handler handles HTTP requests for posts.
type Handler struct {
	svc PostService
}

// NewHandler constructs a Handler with the given PostService.
func NewHandler(svc PostService) *Handler {
	return &Handler{svc: svc}
}

// ListPublished handles GET /posts/published.
func (h *Handler) ListPublished(c *gin.Context) {
	ctx := c.Request.Context()
	posts, err := h.svc.GetPublishedPosts(ctx)
	if err != nil {
		logger.Error(ctx, "failed to list published posts: %s", err.Error())
		internalError(c)
		return
	}
	if len(posts) == 0 {
		notFound(c)
		return
	}
	logger.With(ctx, map[string]any{"count": len(posts)}).Debug("published posts listed")
	c.JSON(http.StatusOK, posts)
}

// GetBySlug handles GET /posts/:slug. Drafts are invisible here.
func (h *Handler) GetBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")
	post, err := h.svc.GetPostBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			notFound(c)
			return
		}
		logger.Error(ctx, "failed to get post by slug: %s", err.Error())
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListByTag handles GET /posts/tagged/:tag.
func (h *Handler) ListByTag(c *gin.Context) {
	ctx := c.Request.Context()
	tag := c.Param("tag")
	posts, err := h.svc.GetPostsByTag(ctx, tag)
	if err != nil {
		logger.Error(ctx, "failed to list posts by tag: %s", err.Error())
		internalError(c)
		return
	}
	if len(posts) == 0 {
		notFound(c)
		return
	}
	logger.With(ctx, map[string]any{"tag": tag, "count": len(posts)}).Debug("posts listed by tag")
	c.JSON(http.StatusOK, posts)
}

// Create handles POST /posts.
func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.CreatePostRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "failed to bind JSON: %s", err.Error())
		badRequest(c, err.Error())
		return
	}
	slug, err := h.svc.CreatePost(ctx, draftFromDTO(req))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDraft) {
			badRequest(c, err.Error())
			return
		}
		logger.Error(ctx, "failed to create post: %s", err.Error())
		internalError(c)
		return
	}
	logger.With(ctx, map[string]any{"slug": slug}).Info("post created")
	c.Header("Location", "/posts/"+slug)
	c.JSON(http.StatusCreated, domain.CreatePostResponseDTO{Slug: slug})
}

// Update handles PUT /posts/:id. The whole post is replaced; no
// existence check is performed.
func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	var req domain.UpdatePostRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(ctx, "failed to bind JSON: %s", err.Error())
		badRequest(c, err.Error())
		return
	}
	if err := h.svc.UpdatePost(ctx, id, postFromUpdateDTO(id, req)); err != nil {
		logger.Error(ctx, "failed to update post: %s", err.Error())
		internalError(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// IncrementViews handles PUT /posts/:id/views.
func (h *Handler) IncrementViews(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.svc.IncrementViewCount(ctx, id); err != nil {
		logger.Error(ctx, "failed to increment view count: %s", err.Error())
		internalError(c)
		return
	}
	c.Status(http.StatusNoContent)
}

func draftFromDTO(req domain.CreatePostRequestDTO) domain.PostDraft {
	return domain.PostDraft{
		Author:         req.Author,
		Title:          req.Title,
		Summary:        req.Summary,
		ArticleContent: req.ArticleContent,
		Tags:           req.Tags,
		CoverPhoto:     photoFromDTO(req.CoverPhoto),
		Photos:         photosFromDTO(req.Photos),
		Location:       locationFromDTO(req.Location),
		Publish:        req.Publish,
	}
}

func postFromUpdateDTO(id string, req domain.UpdatePostRequestDTO) domain.Post {
	return domain.Post{
		ID:              id,
		Slug:            req.Slug,
		Tags:            req.Tags,
		Author:          req.Author,
		Title:           req.Title,
		Summary:         req.Summary,
		CoverPhoto:      photoFromDTO(req.CoverPhoto),
		Photos:          photosFromDTO(req.Photos),
		ArticleContent:  req.ArticleContent,
		CreatedAt:       req.CreatedAt,
		PublishedAt:     req.PublishedAt,
		ViewCount:       req.ViewCount,
		Location:        locationFromDTO(req.Location),
		ReadTimeMinutes: req.ReadTimeMinutes,
	}
}

func photoFromDTO(p *domain.PhotoDTO) *domain.Photo {
	if p == nil {
		return nil
	}
	return &domain.Photo{ID: p.ID, AltText: p.AltText, PublicURL: p.PublicURL, Width: p.Width, Height: p.Height}
}

func photosFromDTO(ps []domain.PhotoDTO) []domain.Photo {
	out := make([]domain.Photo, 0, len(ps))
	for i := range ps {
		out = append(out, *photoFromDTO(&ps[i]))
	}
	return out
}

func locationFromDTO(l domain.LocationDTO) domain.Location {
	return domain.Location{ID: l.ID, Place: l.Place, Latitude: l.Latitude, Longitude: l.Longitude}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "not_found", "message": "not found"}})
}

func badRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "bad_request", "message": "invalid request", "details": details}})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal_error", "message": "internal server error"}})
}
