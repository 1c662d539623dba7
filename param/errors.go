package param

import "errors"

// ErrUnavailable is returned when a named parameter cannot be resolved from the
// parameter store (missing key, read failure or empty value).
var ErrUnavailable = errors.New("rucsystem: configuration unavailable")
