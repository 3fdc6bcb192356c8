package handlers

import (
	"net/http"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactions engagement.Store[models.Reaction]
	registry  *engagement.Registry
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactions engagement.Store[models.Reaction], registry *engagement.Registry) *ReactionHandler {
	return &ReactionHandler{reactions: reactions, registry: registry}
}

// RegisterReactionRoutes registers authenticated reaction routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/reactions", h.ToggleReaction)
}

// ToggleReaction creates or removes the current user's reaction on a
// target. Reacting again with a different type removes the existing
// record rather than updating it.
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.ToggleReactionRequest
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

	fresh := &models.Reaction{
		UserID:     claims.UserID,
		TargetID:   req.TargetID,
		TargetType: targetType,
		Type:       req.Type,
	}
	result, err := engagement.Toggle(c.Request().Context(), h.reactions, claims.UserID, req.TargetID, targetType, fresh)
	if err != nil {
		return httpError(err)
	}

	if !result.Created {
		return c.JSON(http.StatusOK, echo.Map{"reacted": false})
	}
	return c.JSON(http.StatusCreated, echo.Map{"reacted": true, "reaction": result.Record})
}
