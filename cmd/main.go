// Command engageoffer prints a personalized discount letter for every
// patient in the dataset. Letters go to stdout, logs to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/engageoffer/internal/app"
	"github.com/okian/engageoffer/internal/config"
	"github.com/okian/engageoffer/pkg/logger"
	"github.com/okian/engageoffer/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one pipeline pass and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is configured from cfg, so it is not available yet
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	metrics.Init(metrics.WithNamespace(cfg.MetricsNamespace))
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log.Named("pipeline")),
		app.WithRule(cfg.RuleWidth, cfg.RuleChar),
		app.WithSignature(cfg.Signature),
	)
	if err := svc.Run(ctx, stdout); err != nil {
		log.Error(ctx, "offer generation incomplete", logger.Error(err))
		return 1
	}
	return 0
}
