package store

import "errors"

var (
	// ErrNotInitialized is returned when a lookup runs before the table and
	// index names have been resolved.
	ErrNotInitialized = errors.New("rucsystem: record store not initialized")

	// ErrEmptyKey is returned when QueryByKey is called with an empty key.
	ErrEmptyKey = errors.New("rucsystem: empty lookup key")

	// ErrDataAccess matches every *DataAccessError.
	ErrDataAccess = errors.New("rucsystem: data access failure")
)

// DataAccessError wraps a failed query or scan. Its message is the
// underlying error's message, unchanged.
type DataAccessError struct {
	// Op is the failed operation ("query" or "scan").
	Op string

	// Err is the error returned by DynamoDB or the item decoder.
	Err error
}

func (e *DataAccessError) Error() string { return e.Err.Error() }

func (e *DataAccessError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDataAccess.
func (e *DataAccessError) Is(target error) bool { return target == ErrDataAccess }
