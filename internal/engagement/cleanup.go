package engagement

import (
	"context"
	"fmt"
)

// CleanupStore is the persistence surface the cascade cleaner drives.
// DeleteEngagements purges likes, reactions and bookmarks addressing the
// given targets in one sweep.
type CleanupStore interface {
	CommentIDsForTarget(ctx context.Context, targetType TargetType, targetID string) ([]string, error)
	ReplyIDs(ctx context.Context, parentIDs []string) ([]string, error)
	DeleteComments(ctx context.Context, ids []string) error
	DeleteEngagements(ctx context.Context, targetType TargetType, targetIDs []string) error
}

// Cleaner removes the rows that dangle when a target is deleted. The
// association between an engagement row and its target is a tagged id,
// not a foreign key, so the database cannot cascade on its own; the
// deleting handler calls OnTargetDeleted explicitly. A missed call leaves
// orphaned engagement rows behind, which degrades counts but breaks nothing.
type Cleaner struct {
	store CleanupStore
}

func NewCleaner(store CleanupStore) *Cleaner {
	return &Cleaner{store: store}
}

// OnTargetDeleted purges everything referencing the deleted target.
//
// For posts and series: every comment carrying the target pair goes
// (replies reference the same pair as their root, so one lookup returns
// the whole forest), then the engagements on the target itself and on
// each removed comment.
//
// For comments: the comment's descendants are collected level by level
// and deleted together with their engagements. The caller has already
// deleted the comment row itself.
func (c *Cleaner) OnTargetDeleted(ctx context.Context, targetType TargetType, targetID string) error {
	var doomed []string
	var err error

	switch targetType {
	case TargetPost, TargetSeries:
		doomed, err = c.store.CommentIDsForTarget(ctx, targetType, targetID)
		if err != nil {
			return fmt.Errorf("collecting comments for deleted %s: %w", targetType, err)
		}
	case TargetComment:
		doomed, err = c.descendantIDs(ctx, targetID)
		if err != nil {
			return fmt.Errorf("collecting replies of deleted comment: %w", err)
		}
	default:
		return ErrInvalidTarget
	}

	if err := c.store.DeleteEngagements(ctx, targetType, []string{targetID}); err != nil {
		return fmt.Errorf("purging engagements for deleted %s: %w", targetType, err)
	}

	if len(doomed) == 0 {
		return nil
	}
	if err := c.store.DeleteComments(ctx, doomed); err != nil {
		return fmt.Errorf("purging comments for deleted %s: %w", targetType, err)
	}
	if err := c.store.DeleteEngagements(ctx, TargetComment, doomed); err != nil {
		return fmt.Errorf("purging comment engagements for deleted %s: %w", targetType, err)
	}
	return nil
}

// descendantIDs walks the reply closure breadth-first starting from root.
// The root itself is not included.
func (c *Cleaner) descendantIDs(ctx context.Context, root string) ([]string, error) {
	var all []string
	frontier := []string{root}
	for len(frontier) > 0 {
		next, err := c.store.ReplyIDs(ctx, frontier)
		if err != nil {
			return nil, err
		}
		all = append(all, next...)
		frontier = next
	}
	return all, nil
}
