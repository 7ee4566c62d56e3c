package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"focusnav/internal/config"
	"focusnav/internal/scene"
	"focusnav/internal/telemetry"
	"focusnav/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// defaultLogFile receives logs when log.file is unset; stdout belongs to the TUI.
const defaultLogFile = "focusnav.log"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "focusnav: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "focusnav",
		Short:         "Move keyboard focus through a scene tree with tab and shift+tab",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: focusnav.yaml in the user config dir or cwd)")
	cmd.Flags().String("scene", "", "scene file (.yaml, .yml or .json)")
	cmd.Flags().Bool("wrap", false, "wrap focus around at either end of the order")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	if cfg.Scene == "" {
		return errors.New("no scene: pass --scene or set scene in focusnav.yaml")
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = defaultLogFile
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	tree, err := scene.Load(cfg.Scene)
	if err != nil {
		return err
	}

	tp, err := telemetry.New(ctx, telemetry.Config{
		Endpoint:    cfg.Otel.Endpoint,
		ServiceName: cfg.Otel.Service,
		Insecure:    cfg.Otel.Insecure,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown", "err", err)
		}
	}()

	logger.Info("scene loaded", "path", cfg.Scene, "nodes", tree.Len(), "tracing", tp.Enabled())
	model := ui.NewAppModel(tree, ui.AppConfig{
		Logger: logger,
		Tracer: tp.Tracer("focusnav/dispatch"),
		Wrap:   cfg.Wrap,
	}).AsTeaModel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
