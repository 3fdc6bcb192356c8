package engagement

import (
	"context"
	"errors"
)

// Store is the persistence surface one engagement table (likes, reactions
// or bookmarks) exposes to the toggle. Create must return ErrDuplicate
// when the insert violates the (user_id, target_id, target_type) unique
// index, and FindByOwner must return ErrRecordNotFound when no row matches.
type Store[T any] interface {
	FindByOwner(ctx context.Context, userID, targetID string, targetType TargetType) (*T, error)
	Create(ctx context.Context, record *T) error
	Delete(ctx context.Context, record *T) error
}

// Result reports which way a toggle went. Record is only set when a new
// record was created.
type Result[T any] struct {
	Created bool
	Record  *T
}

// Toggle creates the engagement record if absent and deletes it if present.
// Repeating the same action undoes it; a repeat with a different flag value
// (like vs dislike, another reaction type) also toggles off rather than
// updating in place.
//
// The find-then-write sequence races with concurrent toggles for the same
// (user, target) pair. The unique index is the real guarantor: when a
// concurrent create wins, ours surfaces as ErrDuplicate and is recovered
// by fetching and deleting the surviving row, so the caller still observes
// a clean toggle-off. No partial state is possible either way.
func Toggle[T any](ctx context.Context, store Store[T], userID, targetID string, targetType TargetType, fresh *T) (*Result[T], error) {
	existing, err := store.FindByOwner(ctx, userID, targetID, targetType)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := store.Delete(ctx, existing); err != nil {
			return nil, err
		}
		return &Result[T]{Created: false}, nil
	}

	if err := store.Create(ctx, fresh); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return recoverLostRace(ctx, store, userID, targetID, targetType)
		}
		return nil, err
	}
	return &Result[T]{Created: true, Record: fresh}, nil
}

// recoverLostRace treats a unique violation as "already toggled on" and
// completes the toggle by removing the winner's row. If the row is gone by
// the time we look, the concurrent caller ran a full create+delete cycle
// and there is nothing left to remove.
func recoverLostRace[T any](ctx context.Context, store Store[T], userID, targetID string, targetType TargetType) (*Result[T], error) {
	existing, err := store.FindByOwner(ctx, userID, targetID, targetType)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return &Result[T]{Created: false}, nil
		}
		return nil, err
	}
	if err := store.Delete(ctx, existing); err != nil {
		return nil, err
	}
	return &Result[T]{Created: false}, nil
}
