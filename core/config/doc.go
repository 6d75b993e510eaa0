// Package config provides configuration management for the manifest validator.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL connection holding published manifests
//   - Storage: S3/MinIO credentials, bucket and manifest prefix
//   - Log: Logging level and format
//   - Probe: reachability timeouts, attempts and deadline
//
// Nested keys map to upper-case environment variables, e.g. probe.deadline -> PROBE_DEADLINE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Probe.Deadline)
package config
