package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/github-sourcer/api"
	"github.com/thep200/github-sourcer/cfg"
	"github.com/thep200/github-sourcer/internal/sourcing"
	"github.com/thep200/github-sourcer/internal/ui"
	applog "github.com/thep200/github-sourcer/pkg/log"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 0, "Port for the UI server to listen on (0 = configured port)")
	flag.Parse()

	// Setup dependencies
	ctx := context.Background()
	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, _ := applog.NewCslLogger()

	engine, err := sourcing.NewEngine(logger, config)
	if err != nil {
		log.Fatalf("Failed to create sourcing engine: %v", err)
	}
	sourcingApi := api.NewSourcingAPIWith(logger, config, engine)

	listenPort := *port
	if listenPort == 0 {
		listenPort = config.Ui.Port
	}

	// Create and run the server
	server, err := ui.NewServer(logger, config, sourcingApi, listenPort)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Run server in a goroutine
	go func() {
		logger.Info(ctx, "Starting UI server on port %d", listenPort)
		if err := server.Start(); err != nil {
			logger.Error(ctx, "Server failed to start: %v", err)
			os.Exit(1)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Wait for termination signal
	<-stop

	// Create a context with timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Gracefully shutdown the server
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error(ctx, "Error during server shutdown: %v", err)
	}

	logger.Info(ctx, "Server shut down gracefully")
}
