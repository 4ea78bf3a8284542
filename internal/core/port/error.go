package port

import (
	"errors"
	"fmt"

	"github.com/InterNutter/instants/internal/core/model"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRecord = model.ErrInvalidStory
	ErrInvalidTagSet = errors.New("invalid tag set")
	ErrStorage       = errors.New("storage failure")
)

// StorageError wraps an error returned by the underlying store. It matches
// ErrStorage with errors.Is while keeping the original error reachable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
