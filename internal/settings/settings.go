// Package settings loads process configuration for the lookup functions.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/viper"

	"github.com/jacentio/rucsystem/param"
	"github.com/jacentio/rucsystem/store"
)

// DefaultBackendFunction is the lookup backend invoked by the front-end functions.
const DefaultBackendFunction = "empresas_bd"

// Settings aggregates configuration for a function.
// Nested sections are owned by their respective packages.
type Settings struct {
	Store store.Config `mapstructure:"store"`
	Param param.Config `mapstructure:"param"`

	// BackendFunction is the name or ARN of the lookup backend.
	BackendFunction string `mapstructure:"backend_function"`

	// Region overrides the AWS region from the environment.
	Region string `mapstructure:"region"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		Store:           store.DefaultConfig(),
		BackendFunction: DefaultBackendFunction,
		LogLevel:        "info",
	}
}

// Load reads configuration from an optional config file and environment
// variables. Environment variables use the prefix "RUCSYSTEM" and the dot
// character in keys is replaced by an underscore. For example,
// "store.table_parameter" becomes "RUCSYSTEM_STORE_TABLE_PARAMETER".
func Load() (*Settings, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("RUCSYSTEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.BackendFunction == "" {
		cfg.BackendFunction = DefaultBackendFunction
	}
	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(append([]string{}, parts...), tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}

// Level returns the configured log level, defaulting to info.
func (s *Settings) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Logger returns a JSON logger writing to w at the configured level.
func (s *Settings) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: s.Level()}))
}

// AWSConfig loads the SDK configuration, applying Region when set.
func (s *Settings) AWSConfig(ctx context.Context) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if s.Region != "" {
		opts = append(opts, awsconfig.WithRegion(s.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return cfg, nil
}
