package models

import (
	"testing"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, parentID *string) *CommentNode {
	return NewCommentNode(Comment{
		ID:         id,
		ParentID:   parentID,
		TargetID:   "p1",
		TargetType: engagement.TargetPost,
	})
}

func ptr(s string) *string { return &s }

func TestBuildCommentTreeNestsReplies(t *testing.T) {
	nodes := []*CommentNode{
		node("root2", nil),
		node("root1", nil),
		node("r2a", ptr("root2")),
		node("r2a1", ptr("r2a")),
		node("r1a", ptr("root1")),
	}

	roots := BuildCommentTree(nodes)

	require.Len(t, roots, 2)
	assert.Equal(t, "root2", roots[0].ID)
	assert.Equal(t, "root1", roots[1].ID)

	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "r2a", roots[0].Replies[0].ID)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "r2a1", roots[0].Replies[0].Replies[0].ID)

	require.Len(t, roots[1].Replies, 1)
	assert.Equal(t, "r1a", roots[1].Replies[0].ID)
}

func TestBuildCommentTreePreservesInputOrder(t *testing.T) {
	// Roots and siblings come back in the order they were fetched in,
	// so a newest-first query yields a newest-first tree.
	nodes := []*CommentNode{
		node("c3", nil),
		node("c2", nil),
		node("c1", nil),
		node("reply-new", ptr("c1")),
		node("reply-old", ptr("c1")),
	}

	roots := BuildCommentTree(nodes)

	require.Len(t, roots, 3)
	assert.Equal(t, []string{"c3", "c2", "c1"}, []string{roots[0].ID, roots[1].ID, roots[2].ID})

	require.Len(t, roots[2].Replies, 2)
	assert.Equal(t, "reply-new", roots[2].Replies[0].ID)
	assert.Equal(t, "reply-old", roots[2].Replies[1].ID)
}

func TestBuildCommentTreeDropsOrphans(t *testing.T) {
	nodes := []*CommentNode{
		node("root", nil),
		node("orphan", ptr("missing-parent")),
	}

	roots := BuildCommentTree(nodes)

	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].ID)
	assert.Empty(t, roots[0].Replies)
}

func TestBuildCommentTreeEmptyInput(t *testing.T) {
	roots := BuildCommentTree(nil)

	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestBuildCommentTreeSingleChain(t *testing.T) {
	nodes := []*CommentNode{
		node("a", nil),
		node("b", ptr("a")),
		node("c", ptr("b")),
	}

	roots := BuildCommentTree(nodes)

	require.Len(t, roots, 1)
	require.Len(t, roots[0].Replies, 1)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "c", roots[0].Replies[0].Replies[0].ID)
}

func TestNewCommentNodeCarriesPublicAuthor(t *testing.T) {
	comment := Comment{
		ID:     "c1",
		UserID: "u1",
		User: &User{
			ID:       "u1",
			Username: "ann",
			Email:    "ann@example.com",
			Password: "hashed",
		},
	}

	n := NewCommentNode(comment)

	require.NotNil(t, n.User)
	assert.Equal(t, "ann", n.User.Username)
	assert.NotNil(t, n.Replies, "replies serialize as [] rather than null")
}
