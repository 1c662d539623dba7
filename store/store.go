package store

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store provides read-only DynamoDB lookups over the company table.
type Store struct {
	client   Client
	resolver Resolver
	config   Config

	mu        sync.RWMutex
	tableName string
	indexName string
}

// New creates a new Store instance. The store is unusable until Initialize
// has resolved the table and index names.
func New(client Client, resolver Resolver, config Config) *Store {
	config.validate()
	return &Store{
		client:   client,
		resolver: resolver,
		config:   config,
	}
}

// Config returns the store configuration with defaults applied.
func (s *Store) Config() Config {
	return s.config
}

// Initialize resolves the table and index names. It is safe to call before
// every operation; the resolver serves repeated lookups from its cache.
// If either name cannot be resolved the store is left unchanged.
func (s *Store) Initialize(ctx context.Context) error {
	table, err := s.resolver.Resolve(ctx, s.config.TableParameter)
	if err != nil {
		return err
	}
	index, err := s.resolver.Resolve(ctx, s.config.IndexParameter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tableName = table
	s.indexName = index
	s.mu.Unlock()
	return nil
}

// Initialized reports whether both names have been resolved.
func (s *Store) Initialized() bool {
	_, _, err := s.names()
	return err == nil
}

// names returns the resolved table and index names.
func (s *Store) names() (string, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tableName == "" || s.indexName == "" {
		return "", "", ErrNotInitialized
	}
	return s.tableName, s.indexName, nil
}

// QueryByKey returns every record whose key attribute equals key, using the
// secondary index. Order is whatever the index returns.
func (s *Store) QueryByKey(ctx context.Context, key string) ([]Record, error) {
	table, index, err := s.names()
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, ErrEmptyKey
	}

	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#key = :key"),
		ExpressionAttributeNames: map[string]string{
			"#key": s.config.KeyAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":key": &types.AttributeValueMemberS{Value: key},
		},
	})

	records := []Record{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &DataAccessError{Op: "query", Err: err}
		}
		decoded, err := unmarshalRecords(page.Items)
		if err != nil {
			return nil, &DataAccessError{Op: "query", Err: err}
		}
		records = append(records, decoded...)
	}

	return records, nil
}

// ScanAll returns every record in the table. All pages are read into memory
// and returned at once; there is no size limit.
func (s *Store) ScanAll(ctx context.Context) ([]Record, error) {
	table, _, err := s.names()
	if err != nil {
		return nil, err
	}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})

	records := []Record{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &DataAccessError{Op: "scan", Err: err}
		}
		decoded, err := unmarshalRecords(page.Items)
		if err != nil {
			return nil, &DataAccessError{Op: "scan", Err: err}
		}
		records = append(records, decoded...)
	}

	return records, nil
}
