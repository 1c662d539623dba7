package operation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperation matches every *UnsupportedOperationError.
	ErrUnsupportedOperation = errors.New("rucsystem: unsupported operation")

	// ErrMalformedRequest matches every *MalformedRequestError.
	ErrMalformedRequest = errors.New("rucsystem: malformed request")
)

// UnsupportedOperationError reports an operation the dispatcher does not route.
// Its message is returned to callers verbatim.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("Operación no soportada: \"%s\"", e.Operation)
}

// Is reports whether target is ErrUnsupportedOperation.
func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }

// MalformedRequestError reports an event that matches neither the HTTP nor
// the direct invocation shape.
type MalformedRequestError struct {
	Reason string
}

func (e *MalformedRequestError) Error() string {
	return "Solicitud inválida: " + e.Reason
}

// Is reports whether target is ErrMalformedRequest.
func (e *MalformedRequestError) Is(target error) bool { return target == ErrMalformedRequest }

func malformed(format string, args ...any) error {
	return &MalformedRequestError{Reason: fmt.Sprintf(format, args...)}
}
