package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTargetStore answers existence from a fixed set, hiding ids in the
// restricted set from non-owners the way visibility scoping would.
type fakeTargetStore struct {
	existing   map[string]bool
	restricted map[string]string // id -> owner user id
	err        error
}

func (s *fakeTargetStore) Exists(ctx context.Context, id string, viewer *Viewer) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if owner, ok := s.restricted[id]; ok {
		if viewer == nil {
			return false, nil
		}
		return viewer.Admin || viewer.ID == owner, nil
	}
	return s.existing[id], nil
}

func TestRegistryResolveKnownTarget(t *testing.T) {
	registry := NewRegistry()
	registry.Register(TargetPost, &fakeTargetStore{existing: map[string]bool{"p1": true}})

	err := registry.Resolve(context.Background(), TargetPost, "p1", nil)

	assert.NoError(t, err)
}

func TestRegistryResolveUnregisteredType(t *testing.T) {
	registry := NewRegistry()
	registry.Register(TargetPost, &fakeTargetStore{})

	err := registry.Resolve(context.Background(), TargetType("story"), "x", nil)

	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestRegistryResolveMissingTarget(t *testing.T) {
	registry := NewRegistry()
	registry.Register(TargetPost, &fakeTargetStore{existing: map[string]bool{"p1": true}})

	err := registry.Resolve(context.Background(), TargetPost, "p2", nil)

	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestRegistryResolveHiddenTargetLooksMissing(t *testing.T) {
	registry := NewRegistry()
	registry.Register(TargetPost, &fakeTargetStore{restricted: map[string]string{"draft1": "author"}})

	require.ErrorIs(t, registry.Resolve(context.Background(), TargetPost, "draft1", nil), ErrTargetNotFound)
	require.ErrorIs(t, registry.Resolve(context.Background(), TargetPost, "draft1", &Viewer{ID: "someone-else"}), ErrTargetNotFound)

	assert.NoError(t, registry.Resolve(context.Background(), TargetPost, "draft1", &Viewer{ID: "author"}))
	assert.NoError(t, registry.Resolve(context.Background(), TargetPost, "draft1", &Viewer{ID: "mod", Admin: true}))
}

func TestRegistryResolvePropagatesStoreErrors(t *testing.T) {
	registry := NewRegistry()
	registry.Register(TargetPost, &fakeTargetStore{err: errors.New("timeout")})

	err := registry.Resolve(context.Background(), TargetPost, "p1", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTargetNotFound)
}

func TestRegistryDispatchesPerType(t *testing.T) {
	registry := NewRegistry()
	registry.Register(TargetPost, &fakeTargetStore{existing: map[string]bool{"id": true}})
	registry.Register(TargetComment, &fakeTargetStore{})

	assert.NoError(t, registry.Resolve(context.Background(), TargetPost, "id", nil))
	assert.ErrorIs(t, registry.Resolve(context.Background(), TargetComment, "id", nil), ErrTargetNotFound)
}
