package engagement

import "errors"

var (
	// ErrInvalidTarget means the target type is not one of the registered kinds.
	ErrInvalidTarget = errors.New("invalid target type")

	// ErrTargetNotFound means the target type is known but no visible entity
	// carries the given id.
	ErrTargetNotFound = errors.New("target not found")

	// ErrForbidden means the acting user does not own the record it tried to modify.
	ErrForbidden = errors.New("forbidden")

	// ErrRecordNotFound is returned by stores when no engagement record matches.
	ErrRecordNotFound = errors.New("engagement record not found")

	// ErrDuplicate is returned by stores when an insert hits the
	// (user_id, target_id, target_type) unique index.
	ErrDuplicate = errors.New("engagement record already exists")
)
