// Package store provides read-only DynamoDB access to the company (RUC) table.
//
// The table and index names are not compiled in. They live in SSM Parameter
// Store and are resolved through a [Resolver] when [Store.Initialize] runs:
//
//	resolver := param.NewResolver(ssm.NewFromConfig(cfg), param.Config{}, logger)
//	s := store.New(dynamodb.NewFromConfig(cfg), resolver, store.DefaultConfig())
//	if err := s.Initialize(ctx); err != nil {
//	    return err
//	}
//	records, err := s.QueryByKey(ctx, "20100047218")
//
// # Lookups
//
//   - [Store.QueryByKey] queries the secondary index for one registration number
//   - [Store.ScanAll] scans the whole table
//
// Both drain every page before returning. ScanAll has no size limit, so a
// very large table is returned in a single slice.
//
// # Errors
//
//   - [ErrNotInitialized] - a lookup ran before the names were resolved
//   - [ErrEmptyKey] - QueryByKey was called with an empty key
//   - [ErrDataAccess] - DynamoDB or item decoding failed (see [DataAccessError])
//
// Nothing is retried here beyond what the SDK retryer does.
package store
