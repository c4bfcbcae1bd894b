package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verdantapp/sprout/internal/assist"
	"github.com/verdantapp/sprout/internal/engine"
	"github.com/verdantapp/sprout/internal/storage"
	"github.com/verdantapp/sprout/internal/update"
	"github.com/verdantapp/sprout/internal/upkeep"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sprout: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.LoadRuntimeConfig()

	logCleanup, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logCleanup()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	svc := engine.NewService(repo)
	eng := upkeep.NewEngine(cfg.UpkeepBuffer)
	defer eng.Stop()

	var planner update.PlanSource
	if cfg.OpenAIAPIKey != "" {
		planner = assist.NewPlanner(assist.PlannerConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		})
	}

	if _, err := svc.RunUpkeep(context.Background()); err != nil {
		slog.Warn("startup_upkeep_failed", "error", err)
	}

	program := tea.NewProgram(update.NewModel(svc, eng, planner), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// setupLogging sends slog output to a file when debugging; otherwise it
// is discarded so log lines cannot corrupt the terminal UI.
func setupLogging(cfg update.RuntimeConfig) (func(), error) {
	if !cfg.Debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	logPath := filepath.Join(filepath.Dir(cfg.DBPath), "sprout.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { f.Close() }, nil
}
