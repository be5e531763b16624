package domain

import "errors"

var (
	// ErrNotFound: no row matches the key at read or write time.
	ErrNotFound = errors.New("not found")
	// ErrConflict: a write collides with a primary, unique or foreign key.
	ErrConflict = errors.New("conflict")
	// ErrValidation: the request is malformed before any storage access.
	ErrValidation = errors.New("validation failed")
)

// WriteOutcome is the result of an existence-checked update.
type WriteOutcome int

const (
	Updated WriteOutcome = iota + 1
	NotFound
)

func (o WriteOutcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
