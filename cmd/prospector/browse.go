package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/dataset"
	"dealscope/prospector/pkg/prospect/query"
	"dealscope/prospector/pkg/prospect/storage"
	"dealscope/prospector/pkg/telemetry/logging"
	"dealscope/prospector/pkg/tui"
	"dealscope/prospector/pkg/viewstate"
)

// runBrowser takes over the terminal until the browser exits.
var runBrowser = tui.Run

var browseFlags struct {
	filters filterFlags
	logFile string
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse prospects interactively",
	Long: `Open an interactive terminal browser over the dataset.

Filter flags set the starting view. Inside the browser:
  /          search             tab/shift+tab  next/previous group
  g          cycle grouping     c              column picker
  i          industry picker    1-5            rate the selected prospect
  +/-        combined minimum   x              clear filters
  r          reload dataset     ?              full help
  q          quit

Logs are discarded while the browser owns the terminal unless --log-file is
given.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	addFilterFlags(browseCmd, &browseFlags.filters)
	browseCmd.Flags().StringVar(&browseFlags.logFile, "log-file", "", "write logs to this file while browsing")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	state, err := buildState(cmd, cfg, &browseFlags.filters)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if browseFlags.logFile != "" {
		f, err := os.OpenFile(browseFlags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return cli.NewConfigError("log-file", err.Error())
		}
		defer f.Close()
		logOut = f
	}
	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = logOut
	logger, err := logging.New(logCfg)
	if err != nil {
		return cli.WrapConfigError("telemetry.logging", err)
	}
	slog.SetDefault(logger.Slog())

	ctx := cmd.Context()
	src, err := storage.Open(cfg.Dataset.StorageConfig())
	if err != nil {
		return cli.NewCommandError("browse", err)
	}
	ds := dataset.New(src)
	defer ds.Close()

	loadErr := ds.Reload(ctx)
	if loadErr != nil {
		slog.Warn("initial dataset load failed", "source", src.Name(), "error", loadErr)
	}

	return runBrowser(ctx, tui.Options{
		Dataset:       ds,
		Store:         viewstate.NewStore(state),
		Pipeline:      query.NewPipeline(),
		Reload:        ds.Reload,
		IndustryLimit: cfg.View.IndustryLimit,
		LoadErr:       loadErr,
	})
}
