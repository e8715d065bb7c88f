package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage marks every failure of the input or output store. The run
	// cannot recover from it.
	ErrStorage = errors.New("storage failure")
	// ErrMalformedRecord marks a source row with a NULL required column.
	ErrMalformedRecord = errors.New("malformed source record")
)

// Error records the storage operation that failed. It matches ErrStorage
// and the underlying driver error with errors.Is.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
