package handlers

import (
	"context"
	"net/http"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/internal/repositories"
	"github.com/anhngq/blogary/pkg/pagination"
	"github.com/anhngq/blogary/pkg/slug"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	tagRepository  repositories.TagRepository
	counts         engagement.CountsProvider
	cleaner        *engagement.Cleaner
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, tagRepo repositories.TagRepository, counts engagement.CountsProvider, cleaner *engagement.Cleaner) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		tagRepository:  tagRepo,
		counts:         counts,
		cleaner:        cleaner,
	}
}

// RegisterPublicRoutes registers post read routes (optional auth)
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
}

// RegisterPostRoutes registers authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post authored by the current user
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	publishedAt, err := resolvePublication(status, req.ScheduledAt)
	if err != nil {
		return err
	}

	post := &models.Post{
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug.Make(req.Title),
		Thumbnail:   req.Thumbnail,
		Content:     req.Content,
		Status:      status,
		Visibility:  visibility,
		PublishedAt: publishedAt,
		AuthorID:    claims.UserID,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return httpError(err)
	}

	if len(req.Tags) > 0 {
		tags, err := prepareTags(c.Request().Context(), h.tagRepository, req.Tags)
		if err != nil {
			return httpError(err)
		}
		if err := h.postRepository.ReplaceTags(c.Request().Context(), post, tags); err != nil {
			return httpError(err)
		}
	}

	created, err := h.postRepository.GetPostByID(c.Request().Context(), post.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, decoratePost(*created, engagement.Attributes{}))
}

// ListPosts returns one page of visible posts with engagement attributes
func (h *PostHandler) ListPosts(c echo.Context) error {
	viewer := viewerFromContext(c)
	page, limit := pagination.Normalize(intQuery(c, "page"), intQuery(c, "limit"))

	posts, total, err := h.postRepository.ListPosts(c.Request().Context(), repositories.ListPostsQuery{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
		Viewer: viewer,
	})
	if err != nil {
		return httpError(err)
	}

	decorated, err := h.decoratePosts(c.Request().Context(), posts, viewer)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": decorated,
		"meta": pagination.NewMeta(page, limit, total),
	})
}

// GetPost returns one visible post with engagement attributes
func (h *PostHandler) GetPost(c echo.Context) error {
	viewer := viewerFromContext(c)

	post, err := h.postRepository.GetVisiblePost(c.Request().Context(), c.Param("id"), viewer)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	decorated, err := h.decoratePosts(c.Request().Context(), []models.Post{*post}, viewer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, decorated[0])
}

// UpdatePost updates a post owned by the current user
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this post")
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Thumbnail != nil {
		post.Thumbnail = *req.Thumbnail
	}
	if req.Visibility != nil {
		post.Visibility = *req.Visibility
	}
	if req.Status != nil {
		publishedAt, err := resolvePublication(*req.Status, req.ScheduledAt)
		if err != nil {
			return err
		}
		post.Status = *req.Status
		post.PublishedAt = publishedAt
	}

	if err := h.postRepository.UpdatePost(c.Request().Context(), post); err != nil {
		return httpError(err)
	}

	if req.Tags != nil {
		tags, err := prepareTags(c.Request().Context(), h.tagRepository, req.Tags)
		if err != nil {
			return httpError(err)
		}
		if err := h.postRepository.ReplaceTags(c.Request().Context(), post, tags); err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the current user and purges the
// comments and engagements referencing it
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}
	id := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this post")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	if err := h.cleaner.OnTargetDeleted(c.Request().Context(), engagement.TargetPost, id); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) decoratePosts(ctx context.Context, posts []models.Post, viewer *engagement.Viewer) ([]models.DecoratedPost, error) {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	attrs, err := engagement.Decorate(ctx, h.counts, engagement.TargetPost, ids, viewer)
	if err != nil {
		return nil, err
	}

	decorated := make([]models.DecoratedPost, len(posts))
	for i, p := range posts {
		decorated[i] = decoratePost(p, attrs[p.ID])
	}
	return decorated, nil
}

func decoratePost(post models.Post, attrs engagement.Attributes) models.DecoratedPost {
	d := models.DecoratedPost{Post: post, Attributes: attrs}
	if post.Author != nil {
		u := post.Author.Public()
		d.User = &u
	}
	return d
}
