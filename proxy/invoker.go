package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/jacentio/rucsystem/operation"
)

// Invoker sends a request to the lookup backend and returns its envelope.
type Invoker interface {
	InvokeLookup(ctx context.Context, req operation.Request) (operation.Response, error)
}

// LambdaClient is the subset of the Lambda API used by LambdaInvoker.
type LambdaClient interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaInvoker invokes the backend function synchronously.
type LambdaInvoker struct {
	client       LambdaClient
	functionName string
	logger       *slog.Logger
}

// NewLambdaInvoker creates an invoker for the named function (name or ARN).
func NewLambdaInvoker(client LambdaClient, functionName string, logger *slog.Logger) *LambdaInvoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &LambdaInvoker{
		client:       client,
		functionName: functionName,
		logger:       logger,
	}
}

// InvokeLookup implements Invoker.
func (l *LambdaInvoker) InvokeLookup(ctx context.Context, req operation.Request) (operation.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return operation.Response{}, fmt.Errorf("encoding request: %w", err)
	}

	l.logger.Info("invoking backend", "function", l.functionName, "payload", string(payload))

	out, err := l.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(l.functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return operation.Response{}, fmt.Errorf("invoking %s: %w", l.functionName, err)
	}

	if out.FunctionError != nil {
		return operation.Response{}, functionError(aws.ToString(out.FunctionError), out.Payload)
	}

	l.logger.Info("backend responded", "function", l.functionName, "status", out.StatusCode)
	return decodeEnvelope(out.Payload)
}

// functionError builds a FunctionError from the Lambda error payload
// ({"errorMessage": ..., "errorType": ...}).
func functionError(kind string, payload []byte) error {
	var body struct {
		ErrorMessage string `json:"errorMessage"`
	}
	_ = json.Unmarshal(payload, &body)
	return &FunctionError{Kind: kind, Message: body.ErrorMessage}
}

// decodeEnvelope parses a backend response payload.
func decodeEnvelope(payload []byte) (operation.Response, error) {
	var resp operation.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return operation.Response{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if resp.StatusCode == 0 {
		return operation.Response{}, fmt.Errorf("%w: missing statusCode", ErrInvalidEnvelope)
	}
	return resp, nil
}

// Backend is an in-process lookup backend, satisfied by *operation.Dispatcher.
type Backend interface {
	Handle(ctx context.Context, raw json.RawMessage) (operation.Response, error)
}

// LocalInvoker calls a Backend in the same process. The request goes through
// the same JSON encoding as a remote invocation.
type LocalInvoker struct {
	backend Backend
}

// NewLocalInvoker creates an invoker backed by b.
func NewLocalInvoker(b Backend) *LocalInvoker {
	return &LocalInvoker{backend: b}
}

// InvokeLookup implements Invoker.
func (l *LocalInvoker) InvokeLookup(ctx context.Context, req operation.Request) (operation.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return operation.Response{}, fmt.Errorf("encoding request: %w", err)
	}

	resp, err := l.backend.Handle(ctx, payload)
	if err != nil {
		return operation.Response{}, err
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		return operation.Response{}, fmt.Errorf("encoding response: %w", err)
	}
	return decodeEnvelope(encoded)
}
