package intmap

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned by Map.Add and Transient.Add when given a
// negative key.
var ErrInvalidKey = errors.New("intmap: key must be nonnegative")

// ErrConflictingValues is returned by the default meet function when two
// values for the same key differ and the caller supplied no meet function
// to reconcile them.
var ErrConflictingValues = errors.New("intmap: conflicting values for key, no meet function supplied")

// ErrOwnershipViolation is returned when a transient operation is invoked
// with an *Owner that does not match the token the transient was created
// or last sealed with.
var ErrOwnershipViolation = errors.New("intmap: transient accessed through a stale handle or by a non-owner")

// KeyNotFoundError is raised by MustRef when a key has no binding and the
// caller supplied no not-found handler.
type KeyNotFoundError struct {
	Key int
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("intmap: key %d not found", e.Key)
}
