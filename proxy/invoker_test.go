package proxy_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/jacentio/rucsystem/operation"
	"github.com/jacentio/rucsystem/proxy"
)

// fakeLambda records Invoke calls and returns a canned output.
type fakeLambda struct {
	out   *lambda.InvokeOutput
	err   error
	input *lambda.InvokeInput
}

func (f *fakeLambda) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.input = params
	return f.out, f.err
}

func TestLambdaInvoker_Input(t *testing.T) {
	client := &fakeLambda{out: &lambda.InvokeOutput{
		StatusCode: 200,
		Payload:    []byte(`{"statusCode":200,"body":"[]"}`),
	}}
	inv := proxy.NewLambdaInvoker(client, "empresas_bd", nil)

	_, err := inv.InvokeLookup(context.Background(), operation.Request{
		Operation: "GET",
		Payload:   operation.Payload{"NRO_RUC": "12345678901"},
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("InvokeLookup failed: %v", err)
	}

	if aws.ToString(client.input.FunctionName) != "empresas_bd" {
		t.Errorf("expected function 'empresas_bd', got %q", aws.ToString(client.input.FunctionName))
	}
	if client.input.InvocationType != types.InvocationTypeRequestResponse {
		t.Errorf("expected RequestResponse, got %q", client.input.InvocationType)
	}

	var sent map[string]any
	if err := json.Unmarshal(client.input.Payload, &sent); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if sent["operation"] != "GET" || sent["requestId"] != "req-1" {
		t.Errorf("unexpected payload %s", client.input.Payload)
	}
	payload, _ := sent["payload"].(map[string]any)
	if payload["NRO_RUC"] != "12345678901" {
		t.Errorf("expected NRO_RUC '12345678901', got %v", payload["NRO_RUC"])
	}
}

func TestLambdaInvoker_OmitsEmptyPayload(t *testing.T) {
	client := &fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(`{"statusCode":200,"body":"[]"}`)}}
	inv := proxy.NewLambdaInvoker(client, "empresas_bd", nil)

	if _, err := inv.InvokeLookup(context.Background(), operation.Request{Operation: "GET"}); err != nil {
		t.Fatalf("InvokeLookup failed: %v", err)
	}
	if string(client.input.Payload) != `{"operation":"GET"}` {
		t.Errorf("unexpected payload %s", client.input.Payload)
	}
}

func TestLambdaInvoker_DecodesEnvelope(t *testing.T) {
	client := &fakeLambda{out: &lambda.InvokeOutput{
		StatusCode: 200,
		Payload:    []byte(`{"statusCode":500,"body":"{\"error\":\"DynamoDB error\"}"}`),
	}}
	inv := proxy.NewLambdaInvoker(client, "empresas_bd", nil)

	resp, err := inv.InvokeLookup(context.Background(), operation.Request{Operation: "GET"})
	if err != nil {
		t.Fatalf("InvokeLookup failed: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("expected status 500, got %d", resp.StatusCode)
	}
	if resp.ErrorMessage() != "DynamoDB error" {
		t.Errorf("expected 'DynamoDB error', got %q", resp.ErrorMessage())
	}
}

func TestLambdaInvoker_FunctionError(t *testing.T) {
	client := &fakeLambda{out: &lambda.InvokeOutput{
		StatusCode:    200,
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"Task timed out after 3.00 seconds","errorType":"Runtime.ExitError"}`),
	}}
	inv := proxy.NewLambdaInvoker(client, "empresas_bd", nil)

	_, err := inv.InvokeLookup(context.Background(), operation.Request{Operation: "GET"})
	if !errors.Is(err, proxy.ErrFunctionError) {
		t.Fatalf("expected ErrFunctionError, got %v", err)
	}

	var fnErr *proxy.FunctionError
	if !errors.As(err, &fnErr) {
		t.Fatalf("expected *FunctionError, got %T", err)
	}
	if fnErr.Kind != "Unhandled" || fnErr.Message != "Task timed out after 3.00 seconds" {
		t.Errorf("unexpected function error %+v", fnErr)
	}
}

func TestLambdaInvoker_InvokeFailure(t *testing.T) {
	cause := errors.New("AccessDeniedException")
	inv := proxy.NewLambdaInvoker(&fakeLambda{err: cause}, "empresas_bd", nil)

	_, err := inv.InvokeLookup(context.Background(), operation.Request{Operation: "GET"})
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped invoke error, got %v", err)
	}
}

func TestLambdaInvoker_InvalidEnvelope(t *testing.T) {
	payloads := []string{`not-json`, `null`, `{}`, `{"body":"[]"}`}

	for _, p := range payloads {
		t.Run(p, func(t *testing.T) {
			inv := proxy.NewLambdaInvoker(&fakeLambda{out: &lambda.InvokeOutput{Payload: []byte(p)}}, "empresas_bd", nil)

			_, err := inv.InvokeLookup(context.Background(), operation.Request{Operation: "GET"})
			if !errors.Is(err, proxy.ErrInvalidEnvelope) {
				t.Errorf("expected ErrInvalidEnvelope, got %v", err)
			}
		})
	}
}

func TestMissingParameterError(t *testing.T) {
	err := &proxy.MissingParameterError{Name: "nroRuc"}
	if err.Error() != "nroRuc es requerido en la URL" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, proxy.ErrMissingParameter) {
		t.Error("expected errors.Is to match ErrMissingParameter")
	}
}
