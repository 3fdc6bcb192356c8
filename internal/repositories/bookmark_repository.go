package repositories

import (
	"context"
	"errors"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations.
// The first three methods satisfy engagement.Store[models.Bookmark].
type BookmarkRepository interface {
	FindByOwner(ctx context.Context, userID, targetID string, targetType engagement.TargetType) (*models.Bookmark, error)
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, bookmark *models.Bookmark) error
	DeleteForTargets(ctx context.Context, targetType engagement.TargetType, targetIDs []string) error
	ListByUser(ctx context.Context, userID string, targetTypes []engagement.TargetType, offset, limit int) ([]models.Bookmark, int64, error)
}

// PostgresBookmarkRepository implements BookmarkRepository for PostgreSQL
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

// NewPostgresBookmarkRepository creates a new PostgresBookmarkRepository
func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) FindByOwner(ctx context.Context, userID, targetID string, targetType engagement.TargetType) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).
		First(&bookmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, engagement.ErrRecordNotFound
		}
		return nil, err
	}
	return &bookmark, nil
}

func (r *PostgresBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return engagement.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresBookmarkRepository) Delete(ctx context.Context, bookmark *models.Bookmark) error {
	return r.db.WithContext(ctx).Delete(&models.Bookmark{}, "id = ?", bookmark.ID).Error
}

func (r *PostgresBookmarkRepository) DeleteForTargets(ctx context.Context, targetType engagement.TargetType, targetIDs []string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&models.Bookmark{}).Error
}

// ListByUser returns one page of the user's bookmarks, newest first.
func (r *PostgresBookmarkRepository) ListByUser(ctx context.Context, userID string, targetTypes []engagement.TargetType, offset, limit int) ([]models.Bookmark, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND target_type IN ?", userID, targetTypes)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookmarks []models.Bookmark
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookmarks).Error
	if err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}
