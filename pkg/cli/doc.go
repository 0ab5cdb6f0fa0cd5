/*
Package cli provides command-line helpers for the prospector command.

Output Formatting:

Query results print as grouped tables, JSON, or the CSV export format:

	printer := &cli.ViewPrinter{Format: cli.FormatTable, Limit: 25}
	if err := printer.Print(ctx, os.Stdout, view, state); err != nil {
		return err
	}

Plain values (industry lists, version info) go through a Formatter:

	cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, industries)

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

Errors:

ConfigError reports bad configuration or flags; CommandError wraps a
failure of a named command.
*/
package cli
