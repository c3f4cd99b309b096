// main is the entry point of the Treasure Hunt API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Build the treasure service on top of the storage
//  5. Register the HTTP route
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/treasure-hunt-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/treasure-hunt-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/treasure-hunt-api/internal/config"
	"github.com/aanand-mishra/treasure-hunt-api/internal/http/handlers/treasure"
	"github.com/aanand-mishra/treasure-hunt-api/internal/service"
	"github.com/aanand-mishra/treasure-hunt-api/internal/storage/sqlite"
)

func main() {
	// MustLoad reads the YAML config and fatals if anything is wrong.
	// If this returns, config is guaranteed valid.
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting treasure-hunt-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// sqlite.New opens the SQLite file and creates the treasures
	// table. The result is used through the storage.Storage interface,
	// so swapping the database later only touches this one line.
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// The service owns the bury/dig/search rules (validation,
	// proximity thresholds, redaction); handlers stay thin.
	svc := service.New(storage)

	// Route table:
	//   POST /api/treasure   action=bury|dig|search
	//
	// One endpoint for all three operations, matching the form-posting
	// client the original system shipped with.
	router := http.NewServeMux()
	router.HandleFunc("POST /api/treasure", treasure.Action(svc))

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		// Timeouts guard against slow or stalled clients holding
		// connections open indefinitely.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ListenAndServe blocks, so it runs in its own goroutine; the main
	// goroutine stays free to wait for the shutdown signal below.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ErrServerClosed is what ListenAndServe returns after
		// Shutdown() - expected, not an error condition.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Buffered channel of size 1 so the signal is not missed if main
	// is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// Give in-flight requests up to 5 seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given
// environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
