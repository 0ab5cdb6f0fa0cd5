// Package dataset holds the prospect list served by the CLI, the HTTP API,
// and the TUI.
//
// A Dataset wraps a storage.Source and keeps the last successfully loaded
// record list as an immutable Snapshot. Reload swaps the snapshot in a
// single atomic store, so readers always see either the old or the new
// list in full. A failed reload keeps the previous snapshot.
//
// Two helpers drive reloads in long-running processes:
//
//   - Watcher reloads when the JSON dataset file changes on disk. Rapid
//     successive writes are collapsed by a Debouncer.
//   - Refresher reloads on a cron schedule.
//
// Example:
//
//	src, _ := storage.Open(storage.Config{Kind: storage.KindJSON, Path: "data/prospects.json"})
//	ds := dataset.New(src)
//	if err := ds.Reload(ctx); err != nil {
//	    log.Printf("starting with empty dataset: %v", err)
//	}
//	view := query.Run(ctx, ds.Records(), viewstate.Default())
package dataset
