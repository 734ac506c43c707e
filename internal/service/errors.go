package service

import (
	"errors"
	"fmt"
)

// ErrPersistence marks a failure to save generated cards. It never
// fails a generation; see GenerationResult.PersistenceWarning.
var ErrPersistence = errors.New("failed to save generated cards")

// PersistenceError describes a best-effort save that did not complete.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence.Error(), e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
