package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discogswatch/internal/api"
	"discogswatch/internal/config"
	"discogswatch/internal/discogs"
	"discogswatch/internal/logging"
	"discogswatch/internal/service"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Setup("info", "text").Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	client := discogs.NewClient(cfg.Token, "discogswatch/"+version)
	picker := service.NewRandomPicker(client, nil, log)
	poller := service.NewPoller(client, picker, cfg.PollInterval, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First poll runs synchronously: a rejected token aborts before any
	// sensor is served.
	setupCtx, setupCancel := context.WithTimeout(ctx, 5*time.Minute)
	if err := poller.Setup(setupCtx); err != nil {
		setupCancel()
		log.Fatalf("Setup failed: %v", err)
	}
	setupCancel()

	go poller.Start(ctx)

	router := api.SetupRouter(cfg, poller)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Infof("Serving sensors for %d metrics on %s", len(cfg.EnabledSensors()), cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
