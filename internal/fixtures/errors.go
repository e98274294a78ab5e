package fixtures

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record is not in its fixture.
var ErrNotFound = errors.New("not found")

// FetchError reports a fixture document that could not be loaded or decoded.
type FetchError struct {
	Name string
	// Status is the HTTP status (404 for a missing file), or 0 when no
	// response was received.
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to load %s (%d): %v", e.Name, e.Status, e.Err)
	}
	return fmt.Sprintf("failed to load %s: %v", e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
