// Package param resolves named configuration values from AWS SSM Parameter Store.
package param

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/jellydator/ttlcache/v3"
)

// Client is the subset of the SSM API used by Resolver.
// It is satisfied by *ssm.Client.
type Client interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Config holds configuration for the Resolver.
type Config struct {
	// WithDecryption requests SecureString parameters decrypted.
	// Default: false
	WithDecryption bool `mapstructure:"with_decryption"`

	// TTL bounds how long a resolved value (or failure) is reused.
	// Default: 0 (kept for the lifetime of the process)
	TTL time.Duration `mapstructure:"ttl"`
}

// entry is a cached resolution outcome. Failures are cached alongside
// values so a broken parameter is not fetched again by later invocations.
type entry struct {
	value string
	err   error
}

// Resolver fetches parameters once per process and serves later lookups
// from an in-memory cache keyed by parameter name.
type Resolver struct {
	client Client
	config Config
	logger *slog.Logger
	cache  *ttlcache.Cache[string, entry]
}

// NewResolver creates a new Resolver.
func NewResolver(client Client, config Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TTL < 0 {
		config.TTL = 0
	}
	return &Resolver{
		client: client,
		config: config,
		logger: logger,
		cache: ttlcache.New[string, entry](
			ttlcache.WithTTL[string, entry](config.TTL),
			ttlcache.WithDisableTouchOnHit[string, entry](),
		),
	}
}

// Resolve returns the value stored under name. The first call for a name
// performs one remote read; subsequent calls return the cached outcome.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty parameter name", ErrUnavailable)
	}

	loader := ttlcache.LoaderFunc[string, entry](
		func(cache *ttlcache.Cache[string, entry], key string) *ttlcache.Item[string, entry] {
			value, err := r.fetch(ctx, key)
			return cache.Set(key, entry{value: value, err: err}, ttlcache.DefaultTTL)
		},
	)

	item := r.cache.Get(name, ttlcache.WithLoader[string, entry](loader))
	if item == nil {
		return "", fmt.Errorf("%w: %q", ErrUnavailable, name)
	}
	e := item.Value()
	return e.value, e.err
}

// fetch reads a single parameter from SSM.
func (r *Resolver) fetch(ctx context.Context, name string) (string, error) {
	r.logger.Debug("fetching parameter", "name", name)

	result, err := r.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(r.config.WithDecryption),
	})
	if err != nil {
		r.logger.Error("failed to fetch parameter",
			"name", name,
			"error", err,
		)
		return "", fmt.Errorf("%w %q: %w", ErrUnavailable, name, err)
	}
	if result.Parameter == nil || aws.ToString(result.Parameter.Value) == "" {
		r.logger.Error("parameter has no value", "name", name)
		return "", fmt.Errorf("%w %q: empty value", ErrUnavailable, name)
	}

	r.logger.Info("parameter resolved", "name", name, "version", result.Parameter.Version)
	return aws.ToString(result.Parameter.Value), nil
}
