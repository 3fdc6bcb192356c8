package engagement

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCleanupStore serves a canned comment forest and records what the
// cleaner deletes.
type fakeCleanupStore struct {
	commentsByTarget map[string][]string // "type|id" -> comment ids
	repliesByParent  map[string][]string

	deletedComments    []string
	deletedEngagements map[TargetType][]string
}

func newFakeCleanupStore() *fakeCleanupStore {
	return &fakeCleanupStore{
		commentsByTarget:   make(map[string][]string),
		repliesByParent:    make(map[string][]string),
		deletedEngagements: make(map[TargetType][]string),
	}
}

func (s *fakeCleanupStore) CommentIDsForTarget(ctx context.Context, targetType TargetType, targetID string) ([]string, error) {
	return s.commentsByTarget[string(targetType)+"|"+targetID], nil
}

func (s *fakeCleanupStore) ReplyIDs(ctx context.Context, parentIDs []string) ([]string, error) {
	var ids []string
	for _, p := range parentIDs {
		ids = append(ids, s.repliesByParent[p]...)
	}
	return ids, nil
}

func (s *fakeCleanupStore) DeleteComments(ctx context.Context, ids []string) error {
	s.deletedComments = append(s.deletedComments, ids...)
	return nil
}

func (s *fakeCleanupStore) DeleteEngagements(ctx context.Context, targetType TargetType, targetIDs []string) error {
	s.deletedEngagements[targetType] = append(s.deletedEngagements[targetType], targetIDs...)
	return nil
}

func TestCleanupDeletedPostPurgesCommentsAndEngagements(t *testing.T) {
	store := newFakeCleanupStore()
	store.commentsByTarget["post|p1"] = []string{"c1", "c2", "c3"}

	err := NewCleaner(store).OnTargetDeleted(context.Background(), TargetPost, "p1")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, store.deletedComments)
	assert.Equal(t, []string{"p1"}, store.deletedEngagements[TargetPost])
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, store.deletedEngagements[TargetComment])
}

func TestCleanupDeletedPostWithoutComments(t *testing.T) {
	store := newFakeCleanupStore()

	err := NewCleaner(store).OnTargetDeleted(context.Background(), TargetSeries, "s1")

	require.NoError(t, err)
	assert.Empty(t, store.deletedComments)
	assert.Equal(t, []string{"s1"}, store.deletedEngagements[TargetSeries])
	assert.Empty(t, store.deletedEngagements[TargetComment])
}

func TestCleanupDeletedCommentRemovesDescendantClosure(t *testing.T) {
	store := newFakeCleanupStore()
	// root -> (a, b); a -> (a1); a1 -> (a1x)
	store.repliesByParent["root"] = []string{"a", "b"}
	store.repliesByParent["a"] = []string{"a1"}
	store.repliesByParent["a1"] = []string{"a1x"}

	err := NewCleaner(store).OnTargetDeleted(context.Background(), TargetComment, "root")

	require.NoError(t, err)

	want := []string{"a", "a1", "a1x", "b"}
	got := append([]string(nil), store.deletedComments...)
	sort.Strings(got)
	assert.Equal(t, want, got, "every level of the reply closure is removed")

	assert.Contains(t, store.deletedEngagements[TargetComment], "root")
	for _, id := range want {
		assert.Contains(t, store.deletedEngagements[TargetComment], id)
	}
}

func TestCleanupLeafCommentOnlyDropsItsEngagements(t *testing.T) {
	store := newFakeCleanupStore()

	err := NewCleaner(store).OnTargetDeleted(context.Background(), TargetComment, "leaf")

	require.NoError(t, err)
	assert.Empty(t, store.deletedComments)
	assert.Equal(t, []string{"leaf"}, store.deletedEngagements[TargetComment])
}

func TestCleanupRejectsUnknownTargetType(t *testing.T) {
	store := newFakeCleanupStore()

	err := NewCleaner(store).OnTargetDeleted(context.Background(), TargetType("story"), "x")

	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.Empty(t, store.deletedEngagements)
}
