package repositories

import (
	"context"
	"errors"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations.
// The first three methods satisfy engagement.Store[models.Reaction].
type ReactionRepository interface {
	FindByOwner(ctx context.Context, userID, targetID string, targetType engagement.TargetType) (*models.Reaction, error)
	Create(ctx context.Context, reaction *models.Reaction) error
	Delete(ctx context.Context, reaction *models.Reaction) error
	DeleteForTargets(ctx context.Context, targetType engagement.TargetType, targetIDs []string) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

func (r *PostgresReactionRepository) FindByOwner(ctx context.Context, userID, targetID string, targetType engagement.TargetType) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).
		First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, engagement.ErrRecordNotFound
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *PostgresReactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return engagement.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresReactionRepository) Delete(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Delete(&models.Reaction{}, "id = ?", reaction.ID).Error
}

func (r *PostgresReactionRepository) DeleteForTargets(ctx context.Context, targetType engagement.TargetType, targetIDs []string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Delete(&models.Reaction{}).Error
}
