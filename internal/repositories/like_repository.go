package repositories

import (
	"context"
	"errors"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations. The first
// three methods satisfy engagement.Store[models.Like] for the toggle.
type LikeRepository interface {
	FindByOwner(ctx context.Context, userID, targetID string, targetType engagement.TargetType) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, like *models.Like) error
	DeleteForTargets(ctx context.Context, targetType engagement.TargetType, targetIDs []string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) FindByOwner(ctx context.Context, userID, targetID string, targetType engagement.TargetType) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, engagement.ErrRecordNotFound
		}
		return nil, err
	}
	return &like, nil
}

func (r *PostgresLikeRepository) Create(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return engagement.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresLikeRepository) Delete(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Delete(&models.Like{}, "id = ?", like.ID).Error
}

// DeleteForTargets purges all likes addressing the given targets, used by
// the cascade cleaner.
func (r *PostgresLikeRepository) DeleteForTargets(ctx context.Context, targetType engagement.TargetType, targetIDs []string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&models.Like{}).Error
}
