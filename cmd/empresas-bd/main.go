// Command empresas-bd is the lookup backend. It answers direct and HTTP
// invocations with a status/body envelope.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/jacentio/rucsystem/internal/settings"
	"github.com/jacentio/rucsystem/operation"
	"github.com/jacentio/rucsystem/param"
	"github.com/jacentio/rucsystem/store"
)

func main() {
	ctx := context.Background()

	cfg, err := settings.Load()
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stdout)
	slog.SetDefault(logger)

	awsCfg, err := cfg.AWSConfig(ctx)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	resolver := param.NewResolver(ssm.NewFromConfig(awsCfg), cfg.Param, logger)
	records := store.New(dynamodb.NewFromConfig(awsCfg), resolver, cfg.Store)
	dispatcher := operation.NewDispatcher(records, logger)

	lambda.Start(dispatcher.Handle)
}
