package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/cesargomez89/lrcsieve/internal/config"
	"github.com/cesargomez89/lrcsieve/internal/langdetect"
	"github.com/cesargomez89/lrcsieve/internal/logger"
	"github.com/cesargomez89/lrcsieve/internal/pipeline"
	"github.com/cesargomez89/lrcsieve/internal/quality"
	"github.com/cesargomez89/lrcsieve/internal/store"
)

const usage = "usage: lrcsieve <input.db> <output.db>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run is the only place a failure becomes an exit status.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	cfg, err := config.Load(args[0], args[1])
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	}).WithRun(uuid.New().String())

	classifier, err := langdetect.New(cfg.Classifier)
	if err != nil {
		appLogger.Error("Failed to init classifier", "error", err)
		return 1
	}

	appLogger.Info("Opening stores", "input", cfg.InputPath, "output", cfg.OutputPath, "classifier", cfg.Classifier)

	src, err := store.OpenSource(cfg.InputPath, cfg.MinDuration)
	if err != nil {
		appLogger.Error("Failed to open input", "error", err)
		return 1
	}
	defer src.Close() //nolint:errcheck // read-only

	sink, err := store.CreateSink(cfg.OutputPath)
	if err != nil {
		appLogger.Error("Failed to create output", "error", err)
		return 1
	}
	defer func() {
		if err := sink.Close(); err != nil {
			appLogger.Error("Failed to close output", "error", err)
		}
	}()

	driver := pipeline.New(src, sink,
		quality.NewGate(cfg.MinLines, cfg.MinTextBytes),
		classifier,
		pipeline.OptionsFromConfig(cfg),
		appLogger,
	)
	if _, err := driver.Run(ctx); err != nil {
		appLogger.Error("Filter aborted", "error", err, "stats", fmt.Sprintf("%+v", driver.Stats()))
		return 1
	}

	appLogger.Info("Done", "output", cfg.OutputPath)
	return 0
}
