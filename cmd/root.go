package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jazzmini/jsquiz/internal/app"
	"github.com/jazzmini/jsquiz/internal/config"
	"github.com/jazzmini/jsquiz/internal/logging"
	"github.com/jazzmini/jsquiz/internal/store"
	"github.com/spf13/cobra"
)

// logFileName is written inside the data directory while the TUI runs.
const logFileName = "jsquiz.log"

var rootCmd = &cobra.Command{
	Use:   "jsquiz",
	Short: "JavaScript quiz with on-chain level completion",
	Long: "jsquiz: a ten-level JavaScript quiz for the terminal. Passing a level " +
		"submits a completion transaction through your wallet and unlocks the next one.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command, cancelling on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides JSQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default <data dir>/jsquiz.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(walletsCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration with priority:
// defaults < config file < JSQUIZ_* env < flags.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	dataDir, err := store.DataDir()
	if err != nil {
		return nil, "", err
	}
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.NewLoader(dataDir, configPath).Load()
	if err != nil {
		return nil, "", err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if cfg.DBPath, err = resolveDBPath(cmd, cfg.DBPath); err != nil {
		return nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, dataDir, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

// openServices loads config and opens the shared services. CLI commands
// log to stderr; the TUI logs to a file so the screen stays clean.
func openServices(cmd *cobra.Command, logToFile bool) (*app.Services, func(), error) {
	cfg, dataDir, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	var logger *slog.Logger
	var logCloser io.Closer
	if logToFile {
		logger, logCloser, err = logging.OpenFile(cfg.LogLevel, filepath.Join(dataDir, logFileName))
		if err != nil {
			return nil, nil, err
		}
	} else {
		logger = logging.New(cfg.LogLevel, os.Stderr)
	}
	slog.SetDefault(logger)

	svc, err := app.NewServices(cfg, logger)
	if err != nil {
		if logCloser != nil {
			logCloser.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		svc.Close()
		if logCloser != nil {
			logCloser.Close()
		}
	}
	return svc, cleanup, nil
}

// runApp opens the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, cleanup, err := openServices(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	if svc.Config.LocalOnly() {
		fmt.Fprintln(os.Stderr, "No wallet endpoint configured; playing local-only.")
	}
	return app.Run(cmd.Context(), svc)
}
