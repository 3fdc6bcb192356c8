package handlers

import (
	"net/http"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/internal/repositories"
	"github.com/anhngq/blogary/pkg/pagination"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles HTTP requests related to bookmarks
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	postRepository     repositories.PostRepository
	seriesRepository   repositories.SeriesRepository
	registry           *engagement.Registry
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, postRepo repositories.PostRepository, seriesRepo repositories.SeriesRepository, registry *engagement.Registry) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		postRepository:     postRepo,
		seriesRepository:   seriesRepo,
		registry:           registry,
	}
}

// RegisterBookmarkRoutes registers authenticated bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/bookmarks", h.ToggleBookmark)
	g.GET("/bookmarks/my", h.GetMyBookmarks)
}

// ToggleBookmark saves or unsaves a target for the current user
func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	targetType := engagement.TargetType(req.TargetType)
	if err := h.registry.Resolve(c.Request().Context(), targetType, req.TargetID, viewerFromContext(c)); err != nil {
		return httpError(err)
	}

	fresh := &models.Bookmark{
		UserID:     claims.UserID,
		TargetID:   req.TargetID,
		TargetType: targetType,
	}
	result, err := engagement.Toggle(c.Request().Context(), h.bookmarkRepository, claims.UserID, req.TargetID, targetType, fresh)
	if err != nil {
		return httpError(err)
	}

	if !result.Created {
		return c.JSON(http.StatusOK, echo.Map{"bookmarked": false})
	}
	return c.JSON(http.StatusCreated, echo.Map{"bookmarked": true, "bookmark": result.Record})
}

// GetMyBookmarks lists the current user's bookmarks with each target
// resolved to its current payload. Bookmarks whose target has since
// become invisible to the user come back without data.
func (h *BookmarkHandler) GetMyBookmarks(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var params models.GetMyBookmarksParams
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&params); err != nil {
		return err
	}

	page, limit := pagination.Normalize(params.Page, params.Limit)
	var targetTypes []engagement.TargetType
	if params.TargetType != "" {
		targetTypes = []engagement.TargetType{engagement.TargetType(params.TargetType)}
	}

	bookmarks, total, err := h.bookmarkRepository.ListByUser(c.Request().Context(), claims.UserID, targetTypes, pagination.Offset(page, limit), limit)
	if err != nil {
		return httpError(err)
	}

	viewer := viewerFromContext(c)
	resolved := make([]models.BookmarkWithTarget, len(bookmarks))
	for i, b := range bookmarks {
		resolved[i] = models.BookmarkWithTarget{Bookmark: b}
		switch b.TargetType {
		case engagement.TargetPost:
			if post, err := h.postRepository.GetVisiblePost(c.Request().Context(), b.TargetID, viewer); err == nil {
				resolved[i].Data = post
			}
		case engagement.TargetSeries:
			if series, err := h.seriesRepository.GetVisibleSeries(c.Request().Context(), b.TargetID, viewer); err == nil {
				resolved[i].Data = series
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": resolved,
		"meta": pagination.NewMeta(page, limit, total),
	})
}
