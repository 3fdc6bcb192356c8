package engagement

import "context"

// TargetType discriminates which entity an engagement or comment attaches to.
// Likes, reactions, bookmarks and comments all share the same
// (target_id, target_type) pair instead of a real foreign key per kind.
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetSeries  TargetType = "series"
	TargetComment TargetType = "comment"
)

// Valid reports whether t is one of the recognized target kinds.
func (t TargetType) Valid() bool {
	switch t {
	case TargetPost, TargetSeries, TargetComment:
		return true
	}
	return false
}

// Viewer identifies the user a read or mutation is performed for.
// A nil *Viewer means an anonymous caller.
type Viewer struct {
	ID    string
	Admin bool
}

// TargetStore answers existence checks for one target kind. Implementations
// own the visibility rules: a post or series that the viewer may not read
// must report false, indistinguishable from a missing row.
type TargetStore interface {
	Exists(ctx context.Context, id string, viewer *Viewer) (bool, error)
}

// Registry is the single dispatch point resolving a (targetType, targetId)
// pair to the store owning that entity. Consumers never branch on the
// target type themselves.
type Registry struct {
	stores map[TargetType]TargetStore
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[TargetType]TargetStore)}
}

// Register binds a target kind to its owning store. Called once at wiring time.
func (r *Registry) Register(t TargetType, store TargetStore) {
	r.stores[t] = store
}

// Resolve confirms the referenced entity exists and is visible to the viewer.
// It returns ErrInvalidTarget for an unregistered type and ErrTargetNotFound
// when the store reports absence. Must be called before any engagement write.
func (r *Registry) Resolve(ctx context.Context, t TargetType, id string, viewer *Viewer) error {
	store, ok := r.stores[t]
	if !ok {
		return ErrInvalidTarget
	}
	exists, err := store.Exists(ctx, id, viewer)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTargetNotFound
	}
	return nil
}
