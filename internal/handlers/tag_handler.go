package handlers

import (
	"net/http"

	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/internal/repositories"
	"github.com/labstack/echo/v4"
)

// TagHandler handles HTTP requests related to tags
type TagHandler struct {
	tagRepository repositories.TagRepository
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagRepo repositories.TagRepository) *TagHandler {
	return &TagHandler{tagRepository: tagRepo}
}

// RegisterPublicRoutes registers tag read routes
func (h *TagHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/tags", h.GetTags)
	g.GET("/tags/:id", h.GetTag)
}

// RegisterTagRoutes registers authenticated tag routes
func (h *TagHandler) RegisterTagRoutes(g *echo.Group) {
	g.POST("/tags", h.CreateTag)
}

// GetTags returns all tags
func (h *TagHandler) GetTags(c echo.Context) error {
	tags, err := h.tagRepository.GetTags(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// GetTag returns one tag by id
func (h *TagHandler) GetTag(c echo.Context) error {
	tag, err := h.tagRepository.GetTagByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Tag not found")
	}
	return c.JSON(http.StatusOK, tag)
}

// CreateTag creates a tag, returning the existing one when the name is taken
func (h *TagHandler) CreateTag(c echo.Context) error {
	if _, err := requireUser(c); err != nil {
		return err
	}

	var req models.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag, err := h.tagRepository.FindOrCreateByName(c.Request().Context(), req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, tag)
}
