package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/cvelab/collatzmgr/internal/backend"
	"github.com/cvelab/collatzmgr/internal/config"
	apperrors "github.com/cvelab/collatzmgr/internal/errors"
	"github.com/cvelab/collatzmgr/internal/logger"
	"github.com/cvelab/collatzmgr/internal/pool"
	"github.com/cvelab/collatzmgr/internal/progress"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML configuration file")
		maxNumber  = flag.Int("n", 0, "upper bound of the range to process")
		workers    = flag.Int("w", 0, "number of concurrent workers")
		baseURL    = flag.String("u", "", "base URL of the compute service")
		batchSize  = flag.Int("b", 0, "numbers per queue entry")
		local      = flag.Bool("local", false, "compute in-process instead of calling the compute service")
		showStats  = flag.Bool("stats", false, "print the per-worker statistics table")
		quiet      = flag.Bool("quiet", false, "disable the progress bar")
		logLevel   = flag.String("log-level", "", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *maxNumber > 0 {
		cfg.Pool.MaxNumber = *maxNumber
	}
	if *workers > 0 {
		cfg.Pool.Workers = *workers
	}
	if *batchSize > 0 {
		cfg.Pool.BatchSize = *batchSize
	}
	if *baseURL != "" {
		cfg.Backend.BaseURL = *baseURL
	}
	if *local {
		cfg.Backend.Local = true
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger.Initialize(cfg.Logging)
	log := logger.New("cli")

	var computeBackend backend.Backend
	if cfg.Backend.Local {
		computeBackend = backend.NewLocalBackend()
	} else {
		computeBackend = backend.NewRemoteBackend(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	}

	var reporter progress.Reporter = progress.NewNop()
	if !*quiet {
		reporter = progress.NewBar(cfg.Pool.MaxNumber)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Cyan("Finding the number with the longest Collatz sequence up to %d", cfg.Pool.MaxNumber)
	color.Cyan("Using %d concurrent workers", cfg.Pool.Workers)

	report, err := pool.New(cfg.Pool, computeBackend, pool.WithReporter(reporter)).Run(ctx)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeEmptyResultSet {
			fmt.Fprintln(os.Stderr, "no results: every item failed or the range was empty")
			os.Exit(1)
		}
		log.WithError(err).Fatal("run failed")
	}

	fmt.Println()
	color.Green("Number with longest sequence: %d", report.Longest.Number)
	color.Green("Sequence length: %d", report.Longest.Length)
	fmt.Printf("Sequence: %v\n", report.Longest.Sequence)
	fmt.Printf("Attempted: %d  Succeeded: %d  Failed: %d\n", report.Attempted, report.Succeeded, report.Failed)
	fmt.Printf("Time taken: %s\n", report.Elapsed.Round(10*time.Millisecond))

	if *showStats {
		fmt.Println()
		report.WriteStatsTable(os.Stdout)
	}
}
