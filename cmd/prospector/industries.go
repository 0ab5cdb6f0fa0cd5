package main

import (
	"github.com/spf13/cobra"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/prospect/query"
)

var industriesFlags struct {
	limit  int
	format string
}

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List the industries present in the dataset",
	Long: `List the distinct industries of the loaded dataset in sorted order.

Only the first --limit industries are listed, matching the industry filter
panel. Without --limit the configured view.industry_limit applies; pass
--limit 0 to list every industry.`,
	RunE: runIndustries,
}

func init() {
	rootCmd.AddCommand(industriesCmd)

	industriesCmd.Flags().IntVarP(&industriesFlags.limit, "limit", "n", 0, "maximum industries to list (0 lists all)")
	industriesCmd.Flags().StringVarP(&industriesFlags.format, "format", "f", "table", "output format (table, json)")
}

func runIndustries(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	format, err := cli.ParseOutputFormat(industriesFlags.format)
	if err != nil {
		return err
	}

	limit := cfg.View.IndustryLimit
	if cmd.Flags().Changed("limit") {
		limit = industriesFlags.limit
	}

	ds, err := openDataset(cmd.Context(), cfg)
	if err != nil {
		return cli.NewCommandError("industries", err)
	}
	defer ds.Close()

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), query.TopIndustries(ds.Records(), limit))
}
