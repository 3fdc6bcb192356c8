package models

import (
	"time"

	"github.com/anhngq/blogary/internal/engagement"
)

// Comment attaches to a post, series or another context's target via the
// shared (target_id, target_type) pair. Replies point at their parent
// comment through ParentID and always carry the same target pair as the
// comment they answer.
type Comment struct {
	ID         string                `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content    string                `json:"content" gorm:"type:text;not null"`
	UserID     string                `json:"userId" gorm:"type:uuid;not null"`
	User       *User                 `json:"-" gorm:"foreignKey:UserID"`
	TargetID   string                `json:"targetId" gorm:"type:uuid;index:idx_comment_target;not null"`
	TargetType engagement.TargetType `json:"targetType" gorm:"index:idx_comment_target;not null"`
	ParentID   *string               `json:"parentId,omitempty" gorm:"type:uuid;index"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// CommentNode is a comment as it appears in the reply tree: the row's
// fields, its author, its engagement attributes and its nested replies.
type CommentNode struct {
	Comment
	User *PublicUser `json:"user,omitempty"`
	engagement.Attributes
	Replies []*CommentNode `json:"replies"`
}

// NewCommentNode wraps a comment into a tree node with an empty replies slice.
func NewCommentNode(c Comment) *CommentNode {
	node := &CommentNode{Comment: c, Replies: []*CommentNode{}}
	if c.User != nil {
		u := c.User.Public()
		node.User = &u
	}
	return node
}

// BuildCommentTree reassembles the reply forest from a flat, parent-linked
// node list. Two passes: an id lookup map first, then parent wiring in
// input order, so roots and sibling replies keep the order the caller
// fetched them in. A node whose parent is not in the input is dropped.
//
// The input is trusted to be acyclic; comments cannot be created before
// their parents, so a cycle cannot occur through the write path.
func BuildCommentTree(nodes []*CommentNode) []*CommentNode {
	byID := make(map[string]*CommentNode, len(nodes))
	for _, node := range nodes {
		byID[node.ID] = node
	}

	roots := []*CommentNode{}
	for _, node := range nodes {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := byID[*node.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}
	return roots
}

type CreateCommentRequest struct {
	Content    string  `json:"content" validate:"required,min=1,max=2000"`
	TargetID   string  `json:"targetId" validate:"required,uuid"`
	TargetType string  `json:"targetType" validate:"required,oneof=post series"`
	ParentID   *string `json:"parentId,omitempty" validate:"omitempty,uuid"`
}
