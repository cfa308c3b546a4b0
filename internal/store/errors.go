package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks lookups for rows that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrAttemptClosed marks writes against a completed attempt.
	ErrAttemptClosed = errors.New("attempt already completed")
)

// StorageError wraps a driver failure with the operation that hit it.
type StorageError struct {
	Op  string // Operation being performed, e.g. "append answer"
	Err error  // Underlying driver error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
