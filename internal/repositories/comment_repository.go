package repositories

import (
	"context"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// GetCommentsForTarget fetches the complete flat set for one target in a
// single query; the tree is rebuilt in memory, so a partial fetch would
// silently drop replies.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsForTarget(ctx context.Context, targetType engagement.TargetType, targetID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	CommentIDsForTarget(ctx context.Context, targetType engagement.TargetType, targetID string) ([]string, error)
	ReplyIDs(ctx context.Context, parentIDs []string) ([]string, error)
	DeleteComments(ctx context.Context, ids []string) error
	Exists(ctx context.Context, id string, viewer *engagement.Viewer) (bool, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsForTarget retrieves all comments for a target, newest first.
// Replies share the target pair with their root, so this returns the whole
// forest for the tree builder.
func (r *PostgresCommentRepository) GetCommentsForTarget(ctx context.Context, targetType engagement.TargetType, targetID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}

func (r *PostgresCommentRepository) CommentIDsForTarget(ctx context.Context, targetType engagement.TargetType, targetID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("target_id = ? AND target_type = ?", targetID, targetType).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresCommentRepository) ReplyIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresCommentRepository) DeleteComments(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id IN ?", ids).Error
}

// Exists implements engagement.TargetStore for comment targets. Comments
// carry no visibility of their own.
func (r *PostgresCommentRepository) Exists(ctx context.Context, id string, viewer *engagement.Viewer) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
