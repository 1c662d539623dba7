package operation

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// Response is the envelope returned by every backend invocation.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// ErrorBody is the body of a non-200 envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorMessage returns the error carried by a non-200 envelope. A body that
// is not an ErrorBody is returned as-is.
func (r Response) ErrorMessage() string {
	var body ErrorBody
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil || body.Error == "" {
		return r.Body
	}
	return body.Error
}

// newResponse encodes v as the envelope body.
func newResponse(statusCode int, v any) Response {
	body, err := encodeJSON(v)
	if err != nil {
		body, _ = encodeJSON(ErrorBody{Error: err.Error()})
		statusCode = http.StatusInternalServerError
	}
	return Response{StatusCode: statusCode, Body: string(body)}
}

// errorResponse maps err to a 400 for caller mistakes and a 500 otherwise.
func errorResponse(err error) Response {
	return newResponse(StatusFor(err), ErrorBody{Error: err.Error()})
}

// StatusFor returns the envelope status code for err.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnsupportedOperation), errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// encodeJSON marshals v without HTML escaping and without a trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
