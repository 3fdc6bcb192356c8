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

// SeriesHandler handles HTTP requests related to series
type SeriesHandler struct {
	seriesRepository repositories.SeriesRepository
	postRepository   repositories.PostRepository
	tagRepository    repositories.TagRepository
	counts           engagement.CountsProvider
	cleaner          *engagement.Cleaner
}

// NewSeriesHandler creates a new SeriesHandler
func NewSeriesHandler(seriesRepo repositories.SeriesRepository, postRepo repositories.PostRepository, tagRepo repositories.TagRepository, counts engagement.CountsProvider, cleaner *engagement.Cleaner) *SeriesHandler {
	return &SeriesHandler{
		seriesRepository: seriesRepo,
		postRepository:   postRepo,
		tagRepository:    tagRepo,
		counts:           counts,
		cleaner:          cleaner,
	}
}

// RegisterPublicRoutes registers series read routes (optional auth)
func (h *SeriesHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/series", h.ListSeries)
	g.GET("/series/:id", h.GetSeries)
}

// RegisterSeriesRoutes registers authenticated series routes
func (h *SeriesHandler) RegisterSeriesRoutes(g *echo.Group) {
	g.POST("/series", h.CreateSeries)
	g.PUT("/series/:id", h.UpdateSeries)
	g.DELETE("/series/:id", h.DeleteSeries)
	g.POST("/series/:id/posts", h.AddPosts)
	g.DELETE("/series/:id/posts", h.RemovePosts)
}

// CreateSeries creates a series, optionally attaching posts the current
// user authored
func (h *SeriesHandler) CreateSeries(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateSeriesRequest
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

	series := &models.Series{
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug.Make(req.Title),
		Thumbnail:   req.Thumbnail,
		Status:      status,
		Visibility:  visibility,
		PublishedAt: publishedAt,
		AuthorID:    claims.UserID,
	}
	if err := h.seriesRepository.CreateSeries(c.Request().Context(), series); err != nil {
		return httpError(err)
	}

	if len(req.Tags) > 0 {
		tags, err := prepareTags(c.Request().Context(), h.tagRepository, req.Tags)
		if err != nil {
			return httpError(err)
		}
		if err := h.seriesRepository.ReplaceTags(c.Request().Context(), series, tags); err != nil {
			return httpError(err)
		}
	}

	if len(req.PostIDs) > 0 {
		if err := h.attachPosts(c.Request().Context(), series.ID, claims.UserID, req.PostIDs); err != nil {
			return err
		}
	}

	created, err := h.seriesRepository.GetSeriesByID(c.Request().Context(), series.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, decorateSeries(*created, engagement.Attributes{}))
}

// ListSeries returns one page of visible series with engagement attributes
func (h *SeriesHandler) ListSeries(c echo.Context) error {
	viewer := viewerFromContext(c)
	page, limit := pagination.Normalize(intQuery(c, "page"), intQuery(c, "limit"))

	series, total, err := h.seriesRepository.ListSeries(c.Request().Context(), repositories.ListSeriesQuery{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
		Viewer: viewer,
	})
	if err != nil {
		return httpError(err)
	}

	decorated, err := h.decorateSeries(c.Request().Context(), series, viewer)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": decorated,
		"meta": pagination.NewMeta(page, limit, total),
	})
}

// GetSeries returns one visible series with its visible posts
func (h *SeriesHandler) GetSeries(c echo.Context) error {
	viewer := viewerFromContext(c)

	series, err := h.seriesRepository.GetVisibleSeries(c.Request().Context(), c.Param("id"), viewer)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Series not found")
	}

	decorated, err := h.decorateSeries(c.Request().Context(), []models.Series{*series}, viewer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, decorated[0])
}

// UpdateSeries updates a series owned by the current user
func (h *SeriesHandler) UpdateSeries(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateSeriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	series, err := h.seriesRepository.GetSeriesByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Series not found")
	}
	if series.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this series")
	}

	if req.Title != nil {
		series.Title = *req.Title
		series.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		series.Description = *req.Description
	}
	if req.Thumbnail != nil {
		series.Thumbnail = *req.Thumbnail
	}
	if req.Visibility != nil {
		series.Visibility = *req.Visibility
	}
	if req.Status != nil {
		publishedAt, err := resolvePublication(*req.Status, req.ScheduledAt)
		if err != nil {
			return err
		}
		series.Status = *req.Status
		series.PublishedAt = publishedAt
	}

	if err := h.seriesRepository.UpdateSeries(c.Request().Context(), series); err != nil {
		return httpError(err)
	}

	if req.Tags != nil {
		tags, err := prepareTags(c.Request().Context(), h.tagRepository, req.Tags)
		if err != nil {
			return httpError(err)
		}
		if err := h.seriesRepository.ReplaceTags(c.Request().Context(), series, tags); err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusOK, series)
}

// DeleteSeries deletes a series owned by the current user. Member posts
// survive with their series reference cleared, while comments and
// engagements addressed to the series itself are purged.
func (h *SeriesHandler) DeleteSeries(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}
	id := c.Param("id")

	series, err := h.seriesRepository.GetSeriesByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Series not found")
	}
	if series.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this series")
	}

	if err := h.postRepository.ClearSeries(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	if err := h.seriesRepository.DeleteSeries(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	if err := h.cleaner.OnTargetDeleted(c.Request().Context(), engagement.TargetSeries, id); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddPosts attaches posts the current user authored to a series they own
func (h *SeriesHandler) AddPosts(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.AddPostsToSeriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	series, err := h.seriesRepository.GetSeriesByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Series not found")
	}
	if series.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this series")
	}

	if err := h.attachPosts(c.Request().Context(), series.ID, claims.UserID, req.PostIDs); err != nil {
		return err
	}

	updated, err := h.seriesRepository.GetSeriesByID(c.Request().Context(), series.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// RemovePosts detaches posts from a series the current user owns
func (h *SeriesHandler) RemovePosts(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.AddPostsToSeriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	series, err := h.seriesRepository.GetSeriesByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Series not found")
	}
	if series.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this series")
	}

	if err := h.postRepository.SetSeries(c.Request().Context(), req.PostIDs, claims.UserID, nil); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// attachPosts verifies the posts belong to the author before linking them.
func (h *SeriesHandler) attachPosts(ctx context.Context, seriesID, authorID string, postIDs []string) error {
	owned, err := h.postRepository.GetPostsByIDsAndAuthor(ctx, postIDs, authorID)
	if err != nil {
		return httpError(err)
	}
	if len(owned) != len(postIDs) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only add your own posts to a series")
	}
	if err := h.postRepository.SetSeries(ctx, postIDs, authorID, &seriesID); err != nil {
		return httpError(err)
	}
	return nil
}

func (h *SeriesHandler) decorateSeries(ctx context.Context, series []models.Series, viewer *engagement.Viewer) ([]models.DecoratedSeries, error) {
	ids := make([]string, len(series))
	for i, s := range series {
		ids[i] = s.ID
	}
	attrs, err := engagement.Decorate(ctx, h.counts, engagement.TargetSeries, ids, viewer)
	if err != nil {
		return nil, err
	}

	decorated := make([]models.DecoratedSeries, len(series))
	for i, s := range series {
		decorated[i] = decorateSeries(s, attrs[s.ID])
	}
	return decorated, nil
}

func decorateSeries(series models.Series, attrs engagement.Attributes) models.DecoratedSeries {
	d := models.DecoratedSeries{Series: series, Attributes: attrs}
	if series.Author != nil {
		u := series.Author.Public()
		d.User = &u
	}
	return d
}
