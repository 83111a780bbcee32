// File: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vibewise_backend/internal/analytics"
	"vibewise_backend/internal/config"
	"vibewise_backend/internal/firebase"
	"vibewise_backend/internal/platform/elasticsearch"
	"vibewise_backend/internal/platform/logger"
	"vibewise_backend/internal/user"

	"go.uber.org/zap"
)

func main() {
	backfillCmd := flag.NewFlagSet("backfill-users", flag.ExitOnError)
	batchSize := backfillCmd.Int("batch-size", 100, "Number of users between progress reports")

	if len(os.Args) > 1 && os.Args[1] == "backfill-users" {
		if err := backfillCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("FATAL: Failed to parse backfill-users flags: %v", err)
		}
		runBackfillCommand(*batchSize)
		return
	}

	// Default: Start server
	startServer()
}

func runBackfillCommand(batchSize int) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration for backfill: %v", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger for backfill: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	fbService, cleanup, err := firebase.NewFirebaseService(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Firebase for backfill", zap.Error(err))
	}
	defer cleanup()

	userService := user.NewService(user.NewFirestoreStore(fbService.Firestore()), nil, analytics.NopRecorder{}, appLogger)

	stats, err := runUserBackfill(context.Background(), fbService, userService, appLogger, batchSize)
	if err != nil {
		appLogger.Error("User backfill failed", zap.Error(err),
			zap.Int("scanned", stats.Scanned), zap.Int("created", stats.Created), zap.Int("failed", stats.Failed))
		cleanup()
		os.Exit(1)
	}
	appLogger.Info("User backfill completed successfully.")
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	if server.ESClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerTimeout)
		if err := elasticsearch.CreateAuthEventsIndexIfNotExists(ctx, server.ESClient, cfg.AnalyticsIndexName, server.AppLogger); err != nil {
			server.AppLogger.Error("Failed to create auth events index. Events will fail to record until it exists.", zap.Error(err))
		}
		cancel()
	} else {
		server.AppLogger.Info("Elasticsearch not configured, skipping index creation.")
	}

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
