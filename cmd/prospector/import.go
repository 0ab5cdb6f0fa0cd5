package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealscope/prospector/pkg/cli"
	"dealscope/prospector/pkg/config"
	"dealscope/prospector/pkg/prospect/storage"
)

var importFlags struct {
	from   string
	to     string
	driver string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Snapshot a JSON dataset into SQLite",
	Long: `Read a JSON prospect dataset and replace the contents of a SQLite
snapshot with it in a single transaction. The snapshot file is locked while
it is written, so concurrent imports wait for each other.

Serve or browse the snapshot with dataset.source: sqlite or --dataset path.db.

Examples:
  prospector import --from prospects.json --to data/prospects.db
  prospector import --from prospects.json --to data/prospects.db --driver sqlite3`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFlags.from, "from", "", "JSON dataset to import (required)")
	importCmd.Flags().StringVar(&importFlags.to, "to", "", "SQLite snapshot path (default: dataset.sqlite.path)")
	importCmd.Flags().StringVar(&importFlags.driver, "driver", "", "SQLite driver: sqlite (pure Go) or sqlite3 (cgo)")
	importCmd.MarkFlagRequired("from")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	ctx := cmd.Context()

	sc := storage.DefaultSQLiteConfig()
	sc.Path = cfg.Dataset.SQLite.Path
	sc.Driver = cfg.Dataset.SQLite.Driver
	if cfg.Dataset.SQLite.BusyTimeout > 0 {
		sc.BusyTimeout = cfg.Dataset.SQLite.BusyTimeout
	}
	if importFlags.to != "" {
		sc.Path = importFlags.to
	}
	if importFlags.driver != "" {
		sc.Driver = importFlags.driver
	}

	src := storage.NewJSONFileSource(importFlags.from)
	records, err := src.Load(ctx)
	if err != nil {
		return cli.NewCommandError("import", err)
	}

	store, err := storage.NewSQLiteStore(sc)
	if err != nil {
		return cli.NewCommandError("import", err)
	}
	defer store.Close()

	if err := store.Import(ctx, src.Name(), records); err != nil {
		return cli.NewCommandError("import", err)
	}
	info, err := store.Snapshot(ctx)
	if err != nil {
		return cli.NewCommandError("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d prospects from %s into %s (%s)\n",
		info.Count, importFlags.from, sc.Path, info.ImportedAt.Format("2006-01-02 15:04:05"))
	return nil
}
