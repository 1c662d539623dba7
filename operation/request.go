// Package operation normalizes backend invocation events and dispatches them
// to the record store.
package operation

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Payload is the operation payload, keyed by field name.
type Payload map[string]any

// String returns field as a string. Strings are returned as-is and numbers
// in their literal form; any other value, or an empty string, reports false.
func (p Payload) String(field string) (string, bool) {
	switch v := p[field].(type) {
	case string:
		return v, v != ""
	case json.Number:
		return v.String(), true
	}
	return "", false
}

// Request is the canonical form of a backend invocation.
// It is also the direct invocation wire format.
type Request struct {
	Operation string  `json:"operation"`
	Payload   Payload `json:"payload,omitempty"`

	// RequestID correlates the backend logs with the calling function.
	RequestID string `json:"requestId,omitempty"`
}

// directEvent is the direct invocation shape. Operation is a pointer so an
// absent field can be told apart from an empty one.
type directEvent struct {
	Operation *string         `json:"operation"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"requestId"`
}

// httpBody is the JSON document carried in an HTTP event body.
type httpBody struct {
	Payload json.RawMessage `json:"payload"`
}

// Normalize converts a raw event into a Request. Events carrying a
// requestContext are treated as API Gateway HTTP events; everything else must
// be a direct invocation with an operation field.
func Normalize(raw json.RawMessage) (Request, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
		return Request{}, malformed("el evento no es un objeto JSON")
	}

	if _, ok := probe["requestContext"]; ok {
		return normalizeHTTP(raw)
	}
	return normalizeDirect(raw)
}

// normalizeHTTP handles an API Gateway HTTP API (payload v2) event.
func normalizeHTTP(raw json.RawMessage) (Request, error) {
	var event events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(raw, &event); err != nil {
		return Request{}, malformed("evento HTTP ilegible: %v", err)
	}

	method := event.RequestContext.HTTP.Method
	if method == "" {
		return Request{}, malformed("evento HTTP sin requestContext.http.method")
	}

	body := event.Body
	if event.IsBase64Encoded && body != "" {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return Request{}, malformed("cuerpo base64 inválido: %v", err)
		}
		body = string(decoded)
	}
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}

	var parsed httpBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return Request{}, malformed("cuerpo JSON inválido: %v", err)
	}

	payload, err := decodePayload(parsed.Payload)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Operation: method,
		Payload:   payload,
		RequestID: event.RequestContext.RequestID,
	}, nil
}

// normalizeDirect handles a direct Lambda invocation payload.
func normalizeDirect(raw json.RawMessage) (Request, error) {
	var event directEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return Request{}, malformed("invocación directa ilegible: %v", err)
	}
	if event.Operation == nil {
		return Request{}, malformed("falta el campo operation")
	}

	payload, err := decodePayload(event.Payload)
	if err != nil {
		return Request{}, err
	}

	return Request{
		Operation: *event.Operation,
		Payload:   payload,
		RequestID: event.RequestID,
	}, nil
}

// decodePayload decodes an optional payload object, keeping numbers as
// json.Number so registration numbers sent unquoted are not rounded.
func decodePayload(raw json.RawMessage) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var payload Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, malformed("payload debe ser un objeto")
	}
	return payload, nil
}
