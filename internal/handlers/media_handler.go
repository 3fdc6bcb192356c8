package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/anhngq/blogary/pkg/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaHandler handles file uploads to object storage
type MediaHandler struct {
	uploader      *storage.S3Uploader
	maxUploadSize int64
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(uploader *storage.S3Uploader, maxUploadSize int64) *MediaHandler {
	return &MediaHandler{uploader: uploader, maxUploadSize: maxUploadSize}
}

// RegisterMediaRoutes registers authenticated media routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// Upload stores an image from a multipart form and returns its public URL
func (h *MediaHandler) Upload(c echo.Context) error {
	claims, err := requireUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > h.maxUploadSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds the upload size limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedMediaTypes[contentType] {
		return echo.NewHTTPError(http.StatusBadRequest, "Unsupported file type")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("media/%s/%s%s", claims.UserID, uuid.NewString(), ext)

	url, err := h.uploader.Upload(c.Request().Context(), key, src, contentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url, "key": key})
}
