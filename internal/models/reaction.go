package models

import (
	"time"

	"github.com/anhngq/blogary/internal/engagement"
)

// Reaction types.
const (
	ReactionTypeLike     = "like"
	ReactionTypeLove     = "love"
	ReactionTypeLaugh    = "laugh"
	ReactionTypeSurprise = "surprise"
	ReactionTypeSad      = "sad"
	ReactionTypeAngry    = "angry"
)

// Reaction is one user's emoji-style reaction to a target. Same toggle and
// uniqueness rules as Like; the type is a flag, not part of the identity,
// so reacting again with a different type toggles off instead of updating.
type Reaction struct {
	ID         string                `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     string                `json:"userId" gorm:"type:uuid;uniqueIndex:idx_unique_reaction;not null"`
	TargetID   string                `json:"targetId" gorm:"type:uuid;uniqueIndex:idx_unique_reaction;index:idx_reaction_target;not null"`
	TargetType engagement.TargetType `json:"targetType" gorm:"uniqueIndex:idx_unique_reaction;index:idx_reaction_target;not null"`
	Type       string                `json:"type" gorm:"not null"`
	CreatedAt  time.Time             `json:"createdAt"`
}

type ToggleReactionRequest struct {
	TargetID   string `json:"targetId" validate:"required,uuid"`
	TargetType string `json:"targetType" validate:"required,oneof=post comment"`
	Type       string `json:"type" validate:"required,oneof=like love laugh surprise sad angry"`
}
