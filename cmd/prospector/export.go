package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/prospect/export"
	"dealscope/prospector/pkg/prospect/query"
)

var exportFlags struct {
	filters filterFlags
	output  string
	format  string
	strict  bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered prospects",
	Long: `Export every prospect that passes the filters, sorted by combined
acquisition score, with one column per visible data column in the order the
columns were enabled. The rating column is never exported.

By default the CSV matches the browser download: values containing a comma
are wrapped in double quotes and nothing else is escaped. Use --strict for
RFC 4180 output.

Examples:
  # Export to ma-prospects.csv in the current directory
  prospector export --combined-min 70

  # Strict CSV to stdout
  prospector export --strict --output -

  # JSON export of selected columns
  prospector export --format json --columns "Company Name,fullName,Combined Acquisition Score"`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addFilterFlags(exportCmd, &exportFlags.filters)
	exportCmd.Flags().StringVarP(&exportFlags.output, "output", "o", "", "output file, or - for stdout (default: configured export filename)")
	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "csv", "export format (csv, json)")
	exportCmd.Flags().BoolVar(&exportFlags.strict, "strict", false, "write RFC 4180 quoted CSV")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	exporter, err := export.New(exportFlags.format, export.Options{
		StrictCSV:  exportFlags.strict || cfg.Export.StrictQuoting,
		PrettyJSON: cfg.Export.JSONPretty,
	})
	if err != nil {
		return cli.WrapConfigError("format", err)
	}
	state, err := buildState(cmd, cfg, &exportFlags.filters)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ds, err := openDataset(ctx, cfg)
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	defer ds.Close()

	view := query.NewPipeline().Run(ctx, ds.Records(), state)

	output := exportFlags.output
	if output == "" {
		output = exportFilename(cfg.Export.Filename, exporter.Format())
	}

	var w io.Writer = cmd.OutOrStdout()
	status := cmd.ErrOrStderr()
	var file *os.File
	if output != "-" {
		if file, err = os.Create(output); err != nil {
			return cli.NewCommandError("export", err)
		}
		defer file.Close()
		w = file
		status = cmd.OutOrStdout()
	}

	if err := export.Run(ctx, exporter, view.Sorted, view.ExportColumns, w); err != nil {
		return cli.NewCommandError("export", err)
	}
	if file != nil {
		if err := file.Sync(); err != nil {
			return cli.NewCommandError("export", err)
		}
	}

	fmt.Fprintf(status, "✓ Exported %d of %d prospects (%d columns) to %s\n",
		len(view.Sorted), view.Total, len(export.DataColumns(view.ExportColumns)), output)
	return nil
}

// exportFilename swaps the extension of the configured CSV filename for
// other formats.
func exportFilename(name, format string) string {
	if format == "csv" {
		return name
	}
	return strings.TrimSuffix(name, ".csv") + "." + format
}
