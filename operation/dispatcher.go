package operation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jacentio/rucsystem/store"
)

const (
	// OperationGet reads records: by key when the payload carries one,
	// otherwise the whole table.
	OperationGet = "GET"

	// KeyField is the payload field holding the registration number.
	KeyField = "NRO_RUC"
)

// RecordStore is the data access used by the Dispatcher.
// It is satisfied by *store.Store.
type RecordStore interface {
	Initialize(ctx context.Context) error
	QueryByKey(ctx context.Context, key string) ([]store.Record, error)
	ScanAll(ctx context.Context) ([]store.Record, error)
}

// Dispatcher routes normalized requests to the record store and wraps the
// outcome in a Response. It holds no per-request state.
type Dispatcher struct {
	store  RecordStore
	logger *slog.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(s RecordStore, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:  s,
		logger: logger,
	}
}

// Handle is the backend Lambda handler. It accepts either event shape and
// always answers with an envelope; the returned error is always nil.
func (d *Dispatcher) Handle(ctx context.Context, raw json.RawMessage) (Response, error) {
	d.logger.Info("received event", "event", string(raw))

	req, err := Normalize(raw)
	if err != nil {
		d.logger.Warn("rejected event", "error", err)
		return errorResponse(err), nil
	}

	return d.Dispatch(ctx, req), nil
}

// Dispatch executes req and returns its envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	logger := d.logger.With("operation", req.Operation, "requestId", req.RequestID)
	logger.Info("parsed operation", "payload", req.Payload)

	switch req.Operation {
	case OperationGet:
		records, err := d.get(ctx, req.Payload)
		if err != nil {
			logger.Error("operation failed", "error", err)
			return errorResponse(err)
		}
		logger.Info("operation completed", "records", len(records))
		return newResponse(http.StatusOK, records)
	default:
		err := &UnsupportedOperationError{Operation: req.Operation}
		logger.Warn("unsupported operation", "error", err)
		return errorResponse(err)
	}
}

// get initializes the store, then queries by key or scans the table.
func (d *Dispatcher) get(ctx context.Context, payload Payload) ([]store.Record, error) {
	if err := d.store.Initialize(ctx); err != nil {
		return nil, err
	}

	var (
		records []store.Record
		err     error
	)
	if key, ok := payload.String(KeyField); ok {
		records, err = d.store.QueryByKey(ctx, key)
	} else {
		records, err = d.store.ScanAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []store.Record{}
	}
	return records, nil
}
