package proxy

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter matches every *MissingParameterError.
	ErrMissingParameter = errors.New("rucsystem: missing path parameter")

	// ErrFunctionError matches every *FunctionError.
	ErrFunctionError = errors.New("rucsystem: backend function error")

	// ErrInvalidEnvelope is returned when the backend answers with something
	// that is not a status/body envelope.
	ErrInvalidEnvelope = errors.New("rucsystem: invalid backend response")
)

// MissingParameterError reports a required path parameter that is absent or
// empty. Its message is returned to callers verbatim.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return e.Name + " es requerido en la URL"
}

// Is reports whether target is ErrMissingParameter.
func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingParameter }

// FunctionError reports an invocation that reached the backend function but
// failed inside it (unhandled error, timeout, out of memory).
type FunctionError struct {
	// Kind is the FunctionError value reported by Lambda ("Unhandled").
	Kind string

	// Message is the errorMessage field of the error payload, if any.
	Message string
}

func (e *FunctionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend function error (%s)", e.Kind)
	}
	return fmt.Sprintf("backend function error (%s): %s", e.Kind, e.Message)
}

// Is reports whether target is ErrFunctionError.
func (e *FunctionError) Is(target error) bool { return target == ErrFunctionError }
