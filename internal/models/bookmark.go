package models

import (
	"time"

	"github.com/anhngq/blogary/internal/engagement"
)

// Bookmark marks a post or series as saved by a user. No flag column;
// presence is the whole record.
type Bookmark struct {
	ID         string                `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     string                `json:"userId" gorm:"type:uuid;uniqueIndex:idx_unique_bookmark;not null"`
	TargetID   string                `json:"targetId" gorm:"type:uuid;uniqueIndex:idx_unique_bookmark;index:idx_bookmark_target;not null"`
	TargetType engagement.TargetType `json:"targetType" gorm:"uniqueIndex:idx_unique_bookmark;index:idx_bookmark_target;not null"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// BookmarkWithTarget carries the resolved post or series payload under
// Data, matching the bookmark listing response shape.
type BookmarkWithTarget struct {
	Bookmark
	Data any `json:"data,omitempty"`
}

type CreateBookmarkRequest struct {
	TargetID   string `json:"targetId" validate:"required,uuid"`
	TargetType string `json:"targetType" validate:"required,oneof=post series"`
}

type GetMyBookmarksParams struct {
	TargetType string `query:"targetType" validate:"omitempty,oneof=post series"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
