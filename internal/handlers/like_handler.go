package handlers

import (
	"net/http"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes and dislikes
type LikeHandler struct {
	likes    engagement.Store[models.Like]
	registry *engagement.Registry
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes engagement.Store[models.Like], registry *engagement.Registry) *LikeHandler {
	return &LikeHandler{likes: likes, registry: registry}
}

// RegisterLikeRoutes registers authenticated like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.ToggleLike)
}

// ToggleLike creates or removes the current user's like on a target.
// Repeating the request with a different isDislike flag still removes the
// existing record; the flag is not part of the record's identity.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateLikeRequest
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

	fresh := &models.Like{
		UserID:     claims.UserID,
		TargetID:   req.TargetID,
		TargetType: targetType,
		IsDislike:  req.IsDislike,
	}
	result, err := engagement.Toggle(c.Request().Context(), h.likes, claims.UserID, req.TargetID, targetType, fresh)
	if err != nil {
		return httpError(err)
	}

	if !result.Created {
		return c.JSON(http.StatusOK, echo.Map{"liked": false})
	}
	return c.JSON(http.StatusCreated, echo.Map{"liked": true, "like": result.Record})
}
