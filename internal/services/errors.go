package services

import (
	"errors"
	"fmt"
)

// Error taxonomy surfaced to callers unmodified. The HTTP layer translates
// these into response codes; the services perform no recovery beyond the
// rollback built into the follow toggle transaction.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthorized     = errors.New("only mutual followers may message each other")
)

// StorageError wraps an underlying persistence failure with the operation that
// hit it. A StorageError out of ToggleFollow means the transaction rolled back
// whole; out of SendMessage it means no message was persisted.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage failure: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
