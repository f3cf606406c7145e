// Command csveda prints an exploratory summary of adults.csv in the
// working directory.
//
// Logging is configured with CSVEDA_LOG_LEVEL and CSVEDA_LOG_FORMAT.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/nao1215/csveda"
	"github.com/nao1215/csveda/internal/config"
	"github.com/nao1215/csveda/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "csveda: %v\n", err)
		return 1
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipeline, err := csveda.NewBuilder().
		SetPath(csveda.DefaultFilePath).
		SetOutput(os.Stdout).
		SetLogger(logger).
		Build(ctx)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	if err := pipeline.Run(ctx); err != nil {
		logger.Error("analysis failed", "error", err)
		return 1
	}
	return 0
}
