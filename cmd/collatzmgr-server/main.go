package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cvelab/collatzmgr/internal/api"
	"github.com/cvelab/collatzmgr/internal/config"
	"github.com/cvelab/collatzmgr/internal/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML configuration file")
		port       = flag.Int("port", 0, "port to listen on")
		logLevel   = flag.String("log-level", "", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger.Initialize(cfg.Logging)
	log := logger.New("server")

	server := api.NewServer(cfg.Server)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Fatal("compute service failed")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}
}
