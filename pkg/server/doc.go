// Package server serves the Prospector JSON API.
//
// The API holds exactly one session: a viewstate.Store that every request
// reads and updates. Nothing is persisted; restarting the server starts a
// fresh session with the configured initial view.
//
// Routes:
//
//	GET  /api/v1/view                      grouped, projected rows plus stats
//	GET  /api/v1/state                     current view state
//	POST /api/v1/state/reset               restore the initial view state
//	PUT  /api/v1/state/search              {"search": "..."}
//	PUT  /api/v1/state/industries          {"industries": ["..."]}
//	POST /api/v1/state/industries/toggle   {"industry": "..."}
//	PUT  /api/v1/state/ranges/{score}      {"min": 0, "max": 100}
//	PUT  /api/v1/state/group               {"groupBy": "combined"}
//	PUT  /api/v1/state/columns             {"columns": ["..."]}
//	POST /api/v1/state/columns/toggle      {"column": "..."}
//	PUT  /api/v1/state/ratings             {"key": "...", "stars": 4}
//	POST /api/v1/state/clear               clear industry and score filters
//	GET  /api/v1/industries?limit=N        distinct industries
//	GET  /api/v1/columns                   toggleable columns
//	GET  /api/v1/export.csv                CSV download
//	GET  /api/v1/export.json               JSON download
//	GET  /api/v1/dataset                   dataset snapshot info
//	POST /api/v1/dataset/reload            reload from the configured source
//	GET  /health, /ready, /version         probes
//	GET  /metrics                          Prometheus
//
// Errors are returned as {"error": {"code": "...", "message": "..."}}.
package server
