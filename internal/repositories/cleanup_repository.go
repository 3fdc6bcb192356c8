package repositories

import (
	"context"

	"github.com/anhngq/blogary/internal/engagement"
)

// CleanupRepository implements engagement.CleanupStore by delegating to the
// comment and engagement repositories.
type CleanupRepository struct {
	comments  CommentRepository
	likes     LikeRepository
	reactions ReactionRepository
	bookmarks BookmarkRepository
}

// NewCleanupRepository creates a new CleanupRepository
func NewCleanupRepository(comments CommentRepository, likes LikeRepository, reactions ReactionRepository, bookmarks BookmarkRepository) *CleanupRepository {
	return &CleanupRepository{
		comments:  comments,
		likes:     likes,
		reactions: reactions,
		bookmarks: bookmarks,
	}
}

func (r *CleanupRepository) CommentIDsForTarget(ctx context.Context, targetType engagement.TargetType, targetID string) ([]string, error) {
	return r.comments.CommentIDsForTarget(ctx, targetType, targetID)
}

func (r *CleanupRepository) ReplyIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	return r.comments.ReplyIDs(ctx, parentIDs)
}

func (r *CleanupRepository) DeleteComments(ctx context.Context, ids []string) error {
	return r.comments.DeleteComments(ctx, ids)
}

func (r *CleanupRepository) DeleteEngagements(ctx context.Context, targetType engagement.TargetType, targetIDs []string) error {
	if err := r.likes.DeleteForTargets(ctx, targetType, targetIDs); err != nil {
		return err
	}
	if err := r.reactions.DeleteForTargets(ctx, targetType, targetIDs); err != nil {
		return err
	}
	return r.bookmarks.DeleteForTargets(ctx, targetType, targetIDs)
}
