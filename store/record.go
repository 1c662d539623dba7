package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Client is the subset of the DynamoDB API used by Store.
// It is satisfied by *dynamodb.Client.
type Client interface {
	dynamodb.QueryAPIClient
	dynamodb.ScanAPIClient
}

// Resolver resolves configuration values by name.
// It is satisfied by *param.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Record is one stored company entity, keyed by attribute name.
// Values are decoded with attributevalue defaults: strings, float64 numbers,
// bools, nested maps and slices.
type Record map[string]any

// unmarshalRecords converts a page of DynamoDB items to records.
func unmarshalRecords(items []map[string]types.AttributeValue) ([]Record, error) {
	records := make([]Record, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, err
	}
	return records, nil
}
