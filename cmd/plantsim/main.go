package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiaonanln/plantsim/cmd/plantsim/plantconfig"
	"github.com/xiaonanln/plantsim/server"
	"github.com/xiaonanln/plantsim/util/logger"
)

func main() {
	loader := plantconfig.NewLoader(nil)
	cfg, err := loader.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	logger.SetDefaultLevel(level)
	if err := logger.SetFormat(cfg.Log.Format); err != nil {
		log.Fatalf("Invalid log format: %v", err)
	}

	if len(cfg.APIKeys) == 0 {
		log.Printf("No API keys configured: every /reactors request will be rejected")
	}

	srv, err := server.NewServer(server.NewServerConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
		if err := <-errChan; err != nil {
			log.Printf("Server error during shutdown: %v", err)
		}
	case err := <-errChan:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Plant simulator stopped")
}
