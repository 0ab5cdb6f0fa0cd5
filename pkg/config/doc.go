// Package config loads and validates Prospector configuration.
//
// Configuration comes from a YAML file with environment variable overrides.
// Values are applied in the following order (later overrides earlier):
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PROSPECTOR_SECTION_FIELD:
//
//   - PROSPECTOR_DATASET_PATH overrides dataset.path
//   - PROSPECTOR_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - PROSPECTOR_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - PROSPECTOR_VIEW_DEFAULT_COLUMNS takes a comma-separated list
//
// # Example
//
//	dataset:
//	  source: json
//	  path: ./data/prospects.json
//	  watch: true
//	  refresh_schedule: "@every 10m"
//	view:
//	  default_group_by: industry
//	export:
//	  strict_quoting: false
//	server:
//	  listen_address: 127.0.0.1:8080
//	  rate_limit:
//	    requests_per_second: 20
//	    burst: 40
//	telemetry:
//	  logging:
//	    level: debug
//	    format: console
//
// The CLI tolerates a missing file: LoadConfigOrDefault returns the defaults
// plus environment overrides in that case.
//
// # Singleton
//
//	if err := config.Initialize("prospector.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// Prefer passing *Config explicitly in tests.
package config
