// cmd/nutribot/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nutribot/internal/bot"
	"nutribot/internal/config"
	"nutribot/internal/gemini"
	"nutribot/internal/logging"
	"nutribot/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing secrets are the only failures fatal to the process.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log)

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	advisor, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		return fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	b, err := bot.New(cfg.Discord.Token, advisor, store, cfg.Discord.Channel, log)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting nutribot", "db_path", cfg.Database.Path, "model", cfg.Gemini.Model)
		if err := b.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	runErr := waitForShutdown(sigCh, errCh, log)

	log.Info("shutting down")
	cancel()
	if err := b.Stop(); err != nil {
		log.Error("error during shutdown", "error", err)
	}
	return runErr
}

// waitForShutdown blocks until a shutdown signal or a bot error arrives.
// A bot error is returned so the process exits non-zero.
func waitForShutdown(sigCh <-chan os.Signal, errCh <-chan error, log *slog.Logger) error {
	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
		return nil
	case err := <-errCh:
		log.Error("bot error", "error", err)
		return err
	}
}
