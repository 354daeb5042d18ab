// Package config provides centralized configuration for the survey commands.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Paths    PathsConfig
	Pipeline PipelineConfig
	Database DatabaseConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
}

// PathsConfig holds the input and output locations of every command.
type PathsConfig struct {
	// Source is the binary statistics file read in binary mode (.dta or .sas7bdat)
	Source string `env:"TRANSFORM_SOURCE_PATH" default:"1_source_data/unclean_data.dta"`

	// Intermediate is the CSV read in CSV mode and written in binary mode
	Intermediate string `env:"TRANSFORM_INTERMEDIATE_PATH" default:"2_data_clearance/input_cleaned.csv"`

	// Output is the delivered CSV
	Output string `env:"TRANSFORM_OUTPUT_PATH" default:"3_deliver/end_file.csv"`

	// Export is the best-effort Parquet copy of the delivered dataset
	Export string `env:"TRANSFORM_EXPORT_PATH" default:"4_convert/end_file.parquet"`

	// CleanInput is the CSV read by the clean command
	CleanInput string `env:"CLEAN_INPUT_PATH" default:"processed_data/output.csv"`

	// CleanOutput is the CSV written by the clean command
	CleanOutput string `env:"CLEAN_OUTPUT_PATH" default:"data_clearance/output_cleaned.csv"`

	// DedupeInput is the CSV read by the dedupe command
	DedupeInput string `env:"DEDUPE_INPUT_PATH" default:"data_clearance/output_cleaned.csv"`

	// DedupeOutput is the deduplicated CSV
	DedupeOutput string `env:"DEDUPE_OUTPUT_PATH" default:"data_clearance/output_no_duplicates.csv"`

	// DedupeReport is the plain text duplicate report
	DedupeReport string `env:"DEDUPE_REPORT_PATH" default:"data_clearance/duplicate_detection_report.txt"`
}

// PipelineConfig holds the tunables of the transformation and duplicate scan.
type PipelineConfig struct {
	// IDSeed seeds the synthetic ID generator (default: 42)
	IDSeed int64 `env:"TRANSFORM_ID_SEED" default:"42"`

	// SimilarityThreshold is the share of equal columns that flags two
	// records as similar (default: 0.9)
	SimilarityThreshold float64 `env:"DEDUPE_SIMILARITY_THRESHOLD" default:"0.9"`

	// Keep selects which member of a duplicate group survives: first, last, none
	Keep string `env:"DEDUPE_KEEP" default:"first"`

	// KeyColumns is the comma-separated subset used for key duplicate detection
	KeyColumns []string `env:"DEDUPE_KEY_COLUMNS" default:"age,marital_status,sex,education,body_weight_kg,height_raw"`
}

// DatabaseConfig holds the optional PostgreSQL sink settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Empty disables the sink.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Table receives the delivered rows (default: survey_records)
	Table string `env:"DB_TABLE" default:"survey_records"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// ConnectTimeout bounds connecting and loading (default: 30s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// Enabled reports whether the sink is configured.
func (c *DatabaseConfig) Enabled() bool { return c.URL != "" }

// MetricsConfig holds run metrics settings.
type MetricsConfig struct {
	// Textfile is where run metrics are written for the node exporter textfile
	// collector. Empty disables metrics output.
	Textfile string `env:"METRICS_TEXTFILE"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
