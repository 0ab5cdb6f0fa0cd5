// Package health serves the liveness, readiness and version probes.
//
//   - /health answers 200 while the process runs.
//   - /ready runs every registered check and answers 503 until all pass.
//     The serve command registers DatasetCheck, so the API reports ready
//     only after the first successful dataset load.
//   - /version reports build information.
//
// Usage:
//
//	checker := health.New(0)
//	checker.RegisterCheck("dataset", health.DatasetCheck(ds))
//	checker.Register(mux, health.NewVersionInfo(version.Version, version.Commit, version.BuildTime))
package health
