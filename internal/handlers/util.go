package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/middleware"
	"github.com/anhngq/blogary/internal/models"
	"github.com/anhngq/blogary/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// viewerFromContext converts request claims to the engagement viewer shape.
// Anonymous requests yield nil.
func viewerFromContext(c echo.Context) *engagement.Viewer {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		return nil
	}
	return &engagement.Viewer{ID: claims.UserID, Admin: claims.Role == models.RoleAdmin}
}

// requireUser returns the authenticated user's claims or an unauthorized error.
func requireUser(c echo.Context) (*models.JwtCustomClaims, error) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return claims, nil
}

// httpError maps the engagement error taxonomy onto HTTP statuses.
// Anything unrecognized is a storage failure and surfaces as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, engagement.ErrInvalidTarget):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid target type")
	case errors.Is(err, engagement.ErrTargetNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Target not found")
	case errors.Is(err, engagement.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return echo.NewHTTPError(http.StatusConflict, "Resource already exists")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// intQuery parses an integer query parameter, zero when absent or malformed.
func intQuery(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

// prepareTags resolves tag references to rows. References by id must
// exist, references by name are created when missing.
func prepareTags(ctx context.Context, repo repositories.TagRepository, refs []models.TagRef) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(refs))
	for _, ref := range refs {
		var tag *models.Tag
		var err error
		switch {
		case ref.ID != "":
			tag, err = repo.GetTagByID(ctx, ref.ID)
		case ref.Name != "":
			tag, err = repo.FindOrCreateByName(ctx, ref.Name)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// resolvePublication derives published_at from the requested status:
// published now, scheduled at the given future time, otherwise unset.
func resolvePublication(status string, scheduledAt *time.Time) (*time.Time, error) {
	switch status {
	case models.StatusPublished:
		now := time.Now()
		return &now, nil
	case models.StatusScheduled:
		if scheduledAt == nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "scheduledAt is required for scheduled status")
		}
		if !scheduledAt.After(time.Now()) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "scheduledAt must be in the future")
		}
		return scheduledAt, nil
	default:
		return nil, nil
	}
}
