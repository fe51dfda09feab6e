package avl

import "fmt"

// SerializationError reports an I/O failure while writing an artifact.
// In-memory rendering cannot fail: upstream validation guarantees
// well-formed sections before a Model exists.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
