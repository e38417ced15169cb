package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/solace/internal/api"
	"github.com/hyperengineering/solace/internal/config"
	"github.com/hyperengineering/solace/internal/store"
	solacesync "github.com/hyperengineering/solace/internal/sync"
	"github.com/hyperengineering/solace/internal/telemetry"
	"github.com/hyperengineering/solace/internal/worker"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "solace",
	Short:        "Solace - offline batch sync service",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(tokenCmd)
}

func run(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded")

	// 3. Initialize logger
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))
	slog.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)
	if cfg.DevMode && cfg.Auth.JWTSecret == "" {
		slog.Warn("dev mode: signing tokens with the built-in insecure key")
	}

	// 4. Tracing (no-op without an endpoint)
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	slog.Info("telemetry initialized", "enabled", cfg.Telemetry.Endpoint != "")

	// 5. Initialize store (migrations, WAL mode)
	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	slog.Info("store initialized", "path", cfg.Database.Path)

	// 6. Sync engine
	registry := solacesync.NewStoreRegistry(db)
	engine := solacesync.NewEngine(
		solacesync.NewDispatcher(registry),
		solacesync.Config{
			OperationTimeout: cfg.Sync.OperationTimeout.Std(),
			BatchTimeout:     cfg.Sync.BatchTimeout.Std(),
		},
		solacesync.SlogFailureSink{Logger: slog.Default()},
	)
	slog.Info("sync engine initialized",
		"operation_timeout", cfg.Sync.OperationTimeout.Std().String(),
		"batch_timeout", cfg.Sync.BatchTimeout.Std().String(),
		"entities", registry.Kinds(),
	)

	// 7. Initialize HTTP router
	handler := api.NewHandler(engine, db, api.Limits{
		MaxOperations: cfg.Sync.MaxOperations,
		MaxBodyBytes:  cfg.Sync.MaxBodyBytes,
	}, Version)
	router := api.NewRouter(handler, cfg.SigningKey())
	slog.Info("router initialized")

	// 8. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	// 9. Background workers
	var wg sync.WaitGroup
	purger := worker.NewPurgeWorker(db, cfg.Worker.PurgeInterval.Std(), cfg.Worker.PurgeRetention.Std())
	startWorker(ctx, &wg, "tombstone-purge", purger.Run)

	// 10. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called gracefully.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel() // Trigger shutdown on server failure
		}
	}()

	// 11. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 12. Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout.Std())
	defer shutdownCancel()

	// 12a. Stop HTTP server (drains in-flight batches)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// 12b. Wait for workers to complete
	wg.Wait()

	// 12c. Flush spans
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("telemetry shutdown error", "error", err)
	}

	// 12d. Close store
	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newLogger builds the process logger from the log section of the config.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context cancellation.
// Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
