// Prospector browses a scored list of M&A acquisition prospects.
//
// It loads a prospect dataset (a JSON file or a SQLite snapshot), derives
// filtered, sorted and grouped views of it, and exports the visible rows as
// CSV. Views can be produced once from flags, browsed interactively, or
// served over HTTP.
//
// Usage:
//
//	# Show the top prospects with a combined score of 70 or more
//	prospector query --combined-min 70 --limit 20
//
//	# Group by boomer priority and print JSON
//	prospector query --group-by boomer --format json
//
//	# Export the Technology prospects to ma-prospects.csv
//	prospector export --industry Technology
//
//	# Snapshot a JSON dataset into SQLite
//	prospector import --from prospects.json --to data/prospects.db
//
//	# Browse interactively
//	prospector browse
//
//	# Serve the HTTP API with file watching and metrics
//	prospector serve --config prospector.yaml
package main

func main() {
	Execute()
}
