package handlers

import (
	"net/http"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	registry          *engagement.Registry
	counts            engagement.CountsProvider
	cleaner           *engagement.Cleaner
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, registry *engagement.Registry, counts engagement.CountsProvider, cleaner *engagement.Cleaner) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		registry:          registry,
		counts:            counts,
		cleaner:           cleaner,
	}
}

// RegisterPublicRoutes registers comment read routes (optional auth)
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/comments", h.ListComments)
}

// RegisterCommentRoutes registers authenticated comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment or a reply. Replies inherit the target
// pair of their parent, so a parent addressed to a different target is
// rejected.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	viewer := viewerFromContext(c)
	targetType := engagement.TargetType(req.TargetType)
	if err := h.registry.Resolve(c.Request().Context(), targetType, req.TargetID, viewer); err != nil {
		return httpError(err)
	}

	if req.ParentID != nil {
		parent, err := h.commentRepository.GetCommentByID(c.Request().Context(), *req.ParentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		if parent.TargetID != req.TargetID || parent.TargetType != targetType {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent comment belongs to a different target")
		}
	}

	comment := &models.Comment{
		Content:    req.Content,
		UserID:     claims.UserID,
		TargetID:   req.TargetID,
		TargetType: targetType,
		ParentID:   req.ParentID,
	}
	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return httpError(err)
	}

	created, err := h.commentRepository.GetCommentByID(c.Request().Context(), comment.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, models.NewCommentNode(*created))
}

// ListComments returns the full reply tree for one target, roots newest
// first, each node carrying its engagement attributes.
func (h *CommentHandler) ListComments(c echo.Context) error {
	targetID := c.QueryParam("targetId")
	targetType := engagement.TargetType(c.QueryParam("targetType"))
	if targetID == "" || !targetType.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "targetId and targetType are required")
	}

	viewer := viewerFromContext(c)
	if err := h.registry.Resolve(c.Request().Context(), targetType, targetID, viewer); err != nil {
		return httpError(err)
	}

	comments, err := h.commentRepository.GetCommentsForTarget(c.Request().Context(), targetType, targetID)
	if err != nil {
		return httpError(err)
	}

	ids := make([]string, len(comments))
	nodes := make([]*models.CommentNode, len(comments))
	for i, comment := range comments {
		ids[i] = comment.ID
		nodes[i] = models.NewCommentNode(comment)
	}

	attrs, err := engagement.Decorate(c.Request().Context(), h.counts, engagement.TargetComment, ids, viewer)
	if err != nil {
		return httpError(err)
	}
	for _, node := range nodes {
		node.Attributes = attrs[node.ID]
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": models.BuildCommentTree(nodes),
		"meta": echo.Map{"total": len(comments)},
	})
}

// DeleteComment deletes a comment the current user wrote, together with
// every descendant reply and the engagements referencing them
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}
	id := c.Param("id")

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	if comment.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not the owner of this comment")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	if err := h.cleaner.OnTargetDeleted(c.Request().Context(), engagement.TargetComment, id); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
