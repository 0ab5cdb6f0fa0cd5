package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/dataset"
	"dealscope/prospector/pkg/prospect/storage"
	"dealscope/prospector/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile     string
	logLevel    string
	datasetPath string
)

var rootCmd = &cobra.Command{
	Use:   "prospector",
	Short: "Prospector - M&A prospect browser",
	Long: `Prospector loads a scored list of company/contact pairs and lets you
search, filter, sort, group, rate and export them.

Every command works from the same view state: a search term, an industry
selection, three score ranges (combined, boomer, burnout), a grouping and a
set of visible columns. Filters are applied in that order, rows are sorted by
combined acquisition score, and the visible columns define the CSV export.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}
		_, err := loadConfig()
		return err
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := cli.SignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults plus PROSPECTOR_* environment when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "override dataset path (.json file or .db SQLite snapshot)")
}

// loadConfig reads the configuration, applies global flag overrides,
// installs it as the process-wide config and sets up the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigOrDefault(cfgFile)
	if err != nil {
		return nil, cli.WrapConfigError("config", err)
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if datasetPath != "" {
		applyDatasetPath(cfg, datasetPath)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, cli.WrapConfigError("config", err)
	}
	config.SetConfig(cfg)

	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
	if err != nil {
		return nil, cli.WrapConfigError("telemetry.logging", err)
	}
	slog.SetDefault(logger.Slog())
	return cfg, nil
}

// applyDatasetPath points the dataset section at path, picking the source
// kind from the file extension.
func applyDatasetPath(cfg *config.Config, path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		cfg.Dataset.Source = storage.KindSQLite
		cfg.Dataset.SQLite.Path = path
		cfg.Dataset.Watch = false
	default:
		cfg.Dataset.Source = storage.KindJSON
		cfg.Dataset.Path = path
	}
}

// openDataset opens the configured source and performs the initial load.
func openDataset(ctx context.Context, cfg *config.Config, opts ...dataset.Option) (*dataset.Dataset, error) {
	src, err := storage.Open(cfg.Dataset.StorageConfig())
	if err != nil {
		return nil, err
	}
	ds := dataset.New(src, opts...)
	if err := ds.Reload(ctx); err != nil {
		ds.Close()
		return nil, err
	}
	return ds, nil
}
