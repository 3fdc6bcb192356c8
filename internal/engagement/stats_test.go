package engagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCountsProvider struct {
	counts    map[string]Counts
	reactions map[string]string

	reactionCalls int
}

func (p *fakeCountsProvider) CountsFor(ctx context.Context, targetType TargetType, targetIDs []string) (map[string]Counts, error) {
	return p.counts, nil
}

func (p *fakeCountsProvider) ViewerReactions(ctx context.Context, targetType TargetType, targetIDs []string, viewerID string) (map[string]string, error) {
	p.reactionCalls++
	return p.reactions, nil
}

func TestDecorateFillsEveryRequestedID(t *testing.T) {
	provider := &fakeCountsProvider{
		counts: map[string]Counts{
			"p1": {Likes: 3, Dislikes: 1, Comments: 7, Bookmarks: 2},
		},
	}

	attrs, err := Decorate(context.Background(), provider, TargetPost, []string{"p1", "p2"}, nil)

	require.NoError(t, err)
	require.Len(t, attrs, 2)

	assert.Equal(t, int64(3), attrs["p1"].LikeCount)
	assert.Equal(t, int64(1), attrs["p1"].DislikeCount)
	assert.Equal(t, int64(7), attrs["p1"].CommentCount)
	assert.Equal(t, int64(2), attrs["p1"].BookmarkCount)

	// Targets with no engagement rows still decorate, zero-valued.
	assert.Zero(t, attrs["p2"].LikeCount)
	assert.Zero(t, attrs["p2"].CommentCount)
}

func TestDecorateAnonymousOmitsReaction(t *testing.T) {
	provider := &fakeCountsProvider{
		counts:    map[string]Counts{"p1": {Likes: 1}},
		reactions: map[string]string{"p1": ReactionLike},
	}

	attrs, err := Decorate(context.Background(), provider, TargetPost, []string{"p1"}, nil)

	require.NoError(t, err)
	assert.Nil(t, attrs["p1"].Reaction)
	assert.Zero(t, provider.reactionCalls, "reactions are never queried for anonymous viewers")
}

func TestDecorateViewerReaction(t *testing.T) {
	provider := &fakeCountsProvider{
		counts:    map[string]Counts{},
		reactions: map[string]string{"p1": ReactionDislike},
	}

	attrs, err := Decorate(context.Background(), provider, TargetPost, []string{"p1", "p2"}, &Viewer{ID: "u1"})

	require.NoError(t, err)
	require.NotNil(t, attrs["p1"].Reaction)
	assert.Equal(t, ReactionDislike, *attrs["p1"].Reaction)
	assert.Nil(t, attrs["p2"].Reaction, "no like record means no reaction field")
}

func TestDecorateEmptyInput(t *testing.T) {
	provider := &fakeCountsProvider{}

	attrs, err := Decorate(context.Background(), provider, TargetPost, nil, &Viewer{ID: "u1"})

	require.NoError(t, err)
	assert.Empty(t, attrs)
	assert.Zero(t, provider.reactionCalls)
}
