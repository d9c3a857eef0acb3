package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fplstat/fplstat/internal/aggregate"
	"github.com/fplstat/fplstat/internal/api"
	"github.com/fplstat/fplstat/internal/config"
	"github.com/fplstat/fplstat/internal/database"
	"github.com/fplstat/fplstat/internal/export"
	"github.com/fplstat/fplstat/internal/fpl"
	"github.com/fplstat/fplstat/internal/snapshot"
	"github.com/fplstat/fplstat/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Connect to database
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Run migrations
	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		log.Fatalf("Failed to create migrations sub-fs: %v", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create FPL client
	fplClient, err := fpl.NewClient(cfg.FPLBaseURL, cfg.FPLUsername, cfg.FPLPassword, cfg.FPLTimeout)
	if err != nil {
		log.Fatalf("Failed to create FPL client: %v", err)
	}

	// Aggregation and snapshot services
	aggregateSvc := aggregate.NewService(fplClient)
	snapshotRepo := snapshot.NewPgRepository(pool)
	snapshotSvc := snapshot.NewService(aggregateSvc, snapshotRepo)

	// Export hooks
	hooks := []worker.ExportHook{
		export.NewPushgatewayExporter(cfg.PushgatewayAddress, cfg.PushgatewayEnabled),
	}
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentials != "" {
		sheets, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentials)
		if err != nil {
			log.Fatalf("Failed to create sheets writer: %v", err)
		}
		hooks = append(hooks, sheets)
	}

	// Start refresh worker
	refreshWorker := worker.NewRefreshWorker(fplClient, snapshotSvc, cfg.RefreshInterval, hooks...)
	go refreshWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, refresh endpoint is unprotected")
	}

	// Start HTTP server
	srv := api.NewServer(cfg.HTTPPort, snapshotSvc, refreshWorker, cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
