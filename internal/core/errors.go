package core

import (
	"errors"
	"fmt"
)

// Validation failures are expected, user-correctable outcomes. They are
// returned as sentinel errors so callers can branch with errors.Is and
// surface a reason string, never as panics or control-flow exceptions.
var (
	// ErrDuplicateUser is returned when the username is already taken or
	// the requested user ID collides with an existing one.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrWeakPassword is returned when the password is shorter than
	// MinPasswordLen.
	ErrWeakPassword = errors.New("password must be at least 4 characters")

	// ErrDuplicateRating is returned when the user has already rated the
	// book.
	ErrDuplicateRating = errors.New("user already rated that book")

	// ErrRatingRange is returned by the input surface when a rating falls
	// outside [RatingMin, RatingMax]. AddRating itself does not
	// re-validate the range.
	ErrRatingRange = errors.New("rating must be between 1 and 10")
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 4

// StorageError wraps a dataset read or append failure. It is fatal to
// the requested operation and surfaced to the caller without retry.
type StorageError struct {
	Dataset string // "users", "ratings", or "books"
	Op      string // "load" or "append"
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Dataset, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
