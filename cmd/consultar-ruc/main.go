// Command consultar-ruc serves GET /empresas: every record in the table.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"

	"github.com/jacentio/rucsystem/internal/settings"
	"github.com/jacentio/rucsystem/proxy"
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

	invoker := proxy.NewLambdaInvoker(lambdasvc.NewFromConfig(awsCfg), cfg.BackendFunction, logger)
	handler := proxy.NewHandler(invoker, logger)

	lambda.Start(handler.LookupAll)
}
