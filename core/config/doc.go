// Package config provides configuration management for collection-prep.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, run timeout)
//   - BGG: Catalog API base URL, default username and timeouts
//   - Pipeline: Concurrency, data directory and archive settings
//   - Storage: S3/MinIO credentials, bucket and snapshot object key
//   - Database: Optional MySQL or SQLite snapshot store
//   - Cache: Optional Redis cache for detail responses
//   - Log: Logging level and format
//
// Environment variables map to nested keys by replacing dots with underscores,
// e.g. BGG_USERNAME sets bgg.username and PIPELINE_CONCURRENCY sets pipeline.concurrency.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.BGG.Username)
package config
