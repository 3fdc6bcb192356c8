package models

import (
	"time"

	"github.com/anhngq/blogary/internal/engagement"
)

// Like is one user's like or dislike of a target. The composite unique
// index is what holds the at-most-one-record invariant under concurrent
// toggles; application code only reacts to its violation.
type Like struct {
	ID         string                `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     string                `json:"userId" gorm:"type:uuid;uniqueIndex:idx_unique_like;not null"`
	TargetID   string                `json:"targetId" gorm:"type:uuid;uniqueIndex:idx_unique_like;index:idx_like_target;not null"`
	TargetType engagement.TargetType `json:"targetType" gorm:"uniqueIndex:idx_unique_like;index:idx_like_target;not null"`
	IsDislike  bool                  `json:"isDislike" gorm:"default:false;not null"`
	CreatedAt  time.Time             `json:"createdAt"`
}

type CreateLikeRequest struct {
	TargetID   string `json:"targetId" validate:"required,uuid"`
	TargetType string `json:"targetType" validate:"required,oneof=post series comment"`
	IsDislike  bool   `json:"isDislike"`
}
