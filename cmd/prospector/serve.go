package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/dataset"
	"dealscope/prospector/pkg/prospect/export"
	"dealscope/prospector/pkg/prospect/query"
	"dealscope/prospector/pkg/prospect/storage"
	"dealscope/prospector/pkg/server"
	"dealscope/prospector/pkg/telemetry/health"
	"dealscope/prospector/pkg/telemetry/metrics"
	"dealscope/prospector/pkg/telemetry/tracing"
)

var serveFlags struct {
	listenAddress string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prospect view over HTTP",
	Long: `Start the HTTP API. The server holds one view session in memory; every
state change re-derives the view from the current dataset snapshot.

Alongside the API the server can:
  - reload the dataset when its JSON file changes (dataset.watch)
  - reload the dataset on a cron schedule (dataset.refresh_schedule)
  - expose Prometheus metrics (telemetry.metrics)
  - export OpenTelemetry traces over OTLP gRPC (telemetry.tracing)

Examples:
  # Start with defaults
  prospector serve --dataset data/prospects.json

  # Start with a config file and a different address
  prospector serve --config prospector.yaml --listen 0.0.0.0:9090

  # Validate config without starting the server
  prospector serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
		if err := config.Validate(cfg); err != nil {
			return cli.WrapConfigError("listen", err)
		}
	}

	initial, err := cfg.View.InitialState()
	if err != nil {
		return cli.WrapConfigError("view", err)
	}

	out := cmd.OutOrStdout()
	if serveFlags.dryRun {
		fmt.Fprintln(out, "✓ Configuration valid")
		return nil
	}

	fmt.Fprintf(out, "Prospector v%s\n", Version)

	ctx := cmd.Context()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("tracer shutdown failed", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)

	src, err := storage.Open(cfg.Dataset.StorageConfig())
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	ds := dataset.New(src,
		dataset.WithObserver(collector),
		dataset.WithTracer(tracer.Tracer()),
	)
	defer ds.Close()

	if err := ds.Reload(ctx); err != nil {
		// The server still starts; /ready reports not_ready until a reload
		// succeeds.
		slog.Warn("initial dataset load failed", "source", src.Name(), "error", err)
	} else {
		fmt.Fprintf(out, "✓ Dataset loaded (%d prospects from %s)\n", len(ds.Records()), src.Name())
	}

	pipeline := query.NewPipeline(
		query.WithObserver(collector),
		query.WithTracer(tracer.Tracer()),
	)
	api := server.NewAPI(server.APIConfig{
		Dataset:  ds,
		Initial:  initial,
		Pipeline: pipeline,
		Exports:  collector,
		ExportOptions: export.Options{
			StrictCSV:  cfg.Export.StrictQuoting,
			PrettyJSON: cfg.Export.JSONPretty,
		},
		Filename:      cfg.Export.Filename,
		IndustryLimit: cfg.View.IndustryLimit,
	})

	checker := health.New(health.DefaultCheckTimeout)
	checker.RegisterCheck("dataset", health.DatasetCheck(ds))

	srv := server.New(cfg, server.Options{
		API:     api,
		Health:  checker,
		Version: health.NewVersionInfo(Version, GitCommit, BuildDate),
		Metrics: collector,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	stopJobs, err := startDatasetJobs(gctx, g, cfg, ds, out)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer stopJobs()

	g.Go(func() error {
		return srv.Start(gctx)
	})

	addr := cfg.Server.ListenAddress
	fmt.Fprintf(out, "✓ Server listening on %s\n", addr)
	fmt.Fprintf(out, "✓ API: http://%s/api/v1/view\n", addr)
	fmt.Fprintf(out, "✓ Health endpoint: http://%s/health\n", addr)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(out, "✓ Metrics endpoint: http://%s%s\n", addr, cfg.Telemetry.Metrics.Path)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		return cli.NewCommandError("serve", err)
	}

	fmt.Fprintln(out, "✓ Server stopped")
	return nil
}

// startDatasetJobs sets up the file watcher and the refresh schedule, and
// runs the watcher in g. Nothing is left running when it returns an error.
// The returned func stops the schedule.
func startDatasetJobs(ctx context.Context, g *errgroup.Group, cfg *config.Config, ds *dataset.Dataset, out io.Writer) (func(), error) {
	var watcher *dataset.Watcher
	if cfg.Dataset.Watch {
		w, err := dataset.NewWatcher(&dataset.WatcherConfig{
			Path:     cfg.Dataset.Path,
			Debounce: cfg.Dataset.WatchDebounce,
		}, ds)
		if err != nil {
			return nil, err
		}
		watcher = w
	}

	refresher := dataset.NewRefresher(cfg.Dataset.RefreshSchedule, ds)
	if err := refresher.Start(ctx); err != nil {
		if watcher != nil {
			watcher.Close()
		}
		return nil, err
	}

	if watcher != nil {
		g.Go(func() error {
			return watcher.Watch(ctx)
		})
		fmt.Fprintf(out, "✓ Watching %s for changes\n", cfg.Dataset.Path)
	}
	if next := refresher.NextRun(); next != nil {
		fmt.Fprintf(out, "✓ Dataset refresh scheduled (%s, next %s)\n",
			cfg.Dataset.RefreshSchedule, next.Format(time.RFC3339))
	}
	return refresher.Stop, nil
}
