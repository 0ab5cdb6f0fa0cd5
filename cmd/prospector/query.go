package main

import (
	"github.com/spf13/cobra"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/prospect/query"
)

var queryFlags struct {
	filters filterFlags
	format  string
	limit   int
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the filtered, sorted and grouped prospect view",
	Long: `Run the view pipeline once and print the result.

The view is built from the configured defaults plus any filter flags. Rows are
sorted by combined acquisition score, highest first, and printed group by
group, followed by the summary statistics and the active filter count.

Examples:
  # Top 10 prospects overall
  prospector query --limit 10

  # Technology and Finance prospects with high burnout, grouped by industry
  prospector query -i Technology -i Finance --burnout-min 70 --group-by industry

  # JSON output for scripting
  prospector query --search acme --format json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	addFilterFlags(queryCmd, &queryFlags.filters)
	queryCmd.Flags().StringVarP(&queryFlags.format, "format", "f", "table", "output format (table, json, csv)")
	queryCmd.Flags().IntVarP(&queryFlags.limit, "limit", "n", 0, "maximum rows per group (0 prints all)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	format, err := cli.ParseOutputFormat(queryFlags.format)
	if err != nil {
		return err
	}
	state, err := buildState(cmd, cfg, &queryFlags.filters)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ds, err := openDataset(ctx, cfg)
	if err != nil {
		return cli.NewCommandError("query", err)
	}
	defer ds.Close()

	view := query.NewPipeline().Run(ctx, ds.Records(), state)

	printer := &cli.ViewPrinter{
		Format:    format,
		Limit:     queryFlags.limit,
		StrictCSV: cfg.Export.StrictQuoting,
	}
	return printer.Print(ctx, cmd.OutOrStdout(), view, state)
}
