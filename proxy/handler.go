// Package proxy implements the API Gateway front-end functions. They turn an
// HTTP request into a backend lookup, invoke the backend and re-wrap its
// envelope for the HTTP caller.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"

	"github.com/jacentio/rucsystem/operation"
)

// PathParameter is the route parameter carrying the registration number.
const PathParameter = "nroRuc"

const (
	messageSuccess    = "Consulta exitosa"
	messageFailure    = "Error en la consulta"
	messageBadRequest = "Error en la solicitud"
)

// Body is the JSON document returned to HTTP callers.
type Body struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Handler serves the lookup routes.
type Handler struct {
	invoker Invoker
	logger  *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(invoker Invoker, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		invoker: invoker,
		logger:  logger,
	}
}

// LookupAll returns every record.
func (h *Handler) LookupAll(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	h.logger.Info("received request", "route", req.RouteKey, "path", req.RawPath)

	return h.lookup(ctx, operation.Request{
		Operation: operation.OperationGet,
	}), nil
}

// LookupByPath returns the records matching the nroRuc path parameter.
func (h *Handler) LookupByPath(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	h.logger.Info("received request", "route", req.RouteKey, "path", req.RawPath)

	key := req.PathParameters[PathParameter]
	if key == "" {
		err := &MissingParameterError{Name: PathParameter}
		h.logger.Warn("rejected request", "error", err)
		return respond(StatusFor(err), Body{Message: messageBadRequest, Error: err.Error()}), nil
	}

	return h.lookup(ctx, operation.Request{
		Operation: operation.OperationGet,
		Payload:   operation.Payload{operation.KeyField: key},
	}), nil
}

// lookup invokes the backend and re-wraps its envelope.
func (h *Handler) lookup(ctx context.Context, req operation.Request) events.APIGatewayV2HTTPResponse {
	req.RequestID = requestID(ctx)
	logger := h.logger.With("requestId", req.RequestID)

	resp, err := h.invoker.InvokeLookup(ctx, req)
	if err != nil {
		logger.Error("invocation failed", "error", err)
		return respond(StatusFor(err), Body{Message: messageFailure, Error: err.Error()})
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("backend reported an error", "status", resp.StatusCode, "error", resp.ErrorMessage())
		return respond(resp.StatusCode, Body{Message: messageFailure, Error: resp.ErrorMessage()})
	}

	data := json.RawMessage(resp.Body)
	if !json.Valid(data) {
		err := fmt.Errorf("%w: body is not JSON", ErrInvalidEnvelope)
		logger.Error("invocation failed", "error", err)
		return respond(http.StatusInternalServerError, Body{Message: messageFailure, Error: err.Error()})
	}

	logger.Info("lookup completed", "bytes", len(data))
	return respond(http.StatusOK, Body{Message: messageSuccess, Data: data})
}

// requestID returns the Lambda request id, or a fresh one outside Lambda.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

// respond builds an HTTP response with a JSON body.
func respond(status int, body Body) events.APIGatewayV2HTTPResponse {
	encoded, err := encodeBody(body)
	if err != nil {
		status = http.StatusInternalServerError
		encoded, _ = encodeBody(Body{Message: messageFailure, Error: err.Error()})
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       encoded,
	}
}

func encodeBody(body Body) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// StatusFor returns the HTTP status used for err.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingParameter):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
