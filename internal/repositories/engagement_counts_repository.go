package repositories

import (
	"context"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"gorm.io/gorm"
)

// PostgresCountsRepository implements engagement.CountsProvider with
// grouped COUNT queries over the engagement tables. Counts are derived at
// read time from the rows themselves; nothing is denormalized.
type PostgresCountsRepository struct {
	db *gorm.DB
}

// NewPostgresCountsRepository creates a new PostgresCountsRepository
func NewPostgresCountsRepository(db *gorm.DB) *PostgresCountsRepository {
	return &PostgresCountsRepository{db: db}
}

type countRow struct {
	TargetID string
	N        int64
}

func (r *PostgresCountsRepository) CountsFor(ctx context.Context, targetType engagement.TargetType, targetIDs []string) (map[string]engagement.Counts, error) {
	result := make(map[string]engagement.Counts, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}

	// likes and dislikes
	var likeRows []struct {
		TargetID  string
		IsDislike bool
		N         int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("target_id, is_dislike, COUNT(*) AS n").
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Group("target_id, is_dislike").
		Find(&likeRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range likeRows {
		c := result[row.TargetID]
		if row.IsDislike {
			c.Dislikes = row.N
		} else {
			c.Likes = row.N
		}
		result[row.TargetID] = c
	}

	// bookmarks
	var bookmarkRows []countRow
	err = r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Select("target_id, COUNT(*) AS n").
		Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
		Group("target_id").
		Find(&bookmarkRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range bookmarkRows {
		c := result[row.TargetID]
		c.Bookmarks = row.N
		result[row.TargetID] = c
	}

	// comments: for comment targets the interesting number is the direct
	// reply count; for posts and series it is the comments addressing them.
	commentQuery := r.db.WithContext(ctx).Model(&models.Comment{})
	if targetType == engagement.TargetComment {
		commentQuery = commentQuery.
			Select("parent_id AS target_id, COUNT(*) AS n").
			Where("parent_id IN ?", targetIDs).
			Group("parent_id")
	} else {
		commentQuery = commentQuery.
			Select("target_id, COUNT(*) AS n").
			Where("target_type = ? AND target_id IN ?", targetType, targetIDs).
			Group("target_id")
	}
	var commentRows []countRow
	if err := commentQuery.Find(&commentRows).Error; err != nil {
		return nil, err
	}
	for _, row := range commentRows {
		c := result[row.TargetID]
		c.Comments = row.N
		result[row.TargetID] = c
	}

	return result, nil
}

func (r *PostgresCountsRepository) ViewerReactions(ctx context.Context, targetType engagement.TargetType, targetIDs []string, viewerID string) (map[string]string, error) {
	result := make(map[string]string)
	if len(targetIDs) == 0 {
		return result, nil
	}

	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", viewerID, targetType, targetIDs).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, like := range likes {
		if like.IsDislike {
			result[like.TargetID] = engagement.ReactionDislike
		} else {
			result[like.TargetID] = engagement.ReactionLike
		}
	}
	return result, nil
}
