package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct populates tagged fields from the environment, recursing into
// nested sections.
func loadStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field, fieldVal := t.Field(i), v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		value, err := lookup(field.Tag)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, value, err)
		}
	}
	return nil
}

// lookup resolves the raw value of a field: env, then envAlt, then default.
func lookup(tag reflect.StructTag) (string, error) {
	name := tag.Get("env")
	for _, key := range []string{name, tag.Get("envAlt")} {
		if key == "" {
			continue
		}
		if value := os.Getenv(key); value != "" {
			return value, nil
		}
	}
	if tag.Get("required") == "true" {
		return "", fmt.Errorf("required environment variable %s is not set", name)
	}
	return tag.Get("default"), nil
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	listType     = reflect.TypeOf([]string(nil))
)

// setField parses value into field. Only the field types Config declares are
// supported.
func setField(field reflect.Value, value string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		field.SetInt(int64(d))

	case field.Type() == listType:
		field.Set(reflect.ValueOf(splitList(value)))

	case field.Kind() == reflect.String:
		field.SetString(value)

	case field.Kind() == reflect.Int, field.Kind() == reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(n)

	case field.Kind() == reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float: %w", err)
		}
		field.SetFloat(f)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Path validation
	paths := []struct{ env, val string }{
		{"TRANSFORM_SOURCE_PATH", c.Paths.Source},
		{"TRANSFORM_INTERMEDIATE_PATH", c.Paths.Intermediate},
		{"TRANSFORM_OUTPUT_PATH", c.Paths.Output},
		{"CLEAN_INPUT_PATH", c.Paths.CleanInput},
		{"CLEAN_OUTPUT_PATH", c.Paths.CleanOutput},
		{"DEDUPE_INPUT_PATH", c.Paths.DedupeInput},
		{"DEDUPE_OUTPUT_PATH", c.Paths.DedupeOutput},
		{"DEDUPE_REPORT_PATH", c.Paths.DedupeReport},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.val) == "" {
			errs = append(errs, p.env+" must not be empty")
		}
	}
	if c.Paths.Output != "" && c.Paths.Output == c.Paths.Intermediate {
		errs = append(errs, "TRANSFORM_OUTPUT_PATH must differ from TRANSFORM_INTERMEDIATE_PATH")
	}

	// Pipeline validation
	if c.Pipeline.SimilarityThreshold <= 0 || c.Pipeline.SimilarityThreshold > 1 {
		errs = append(errs, fmt.Sprintf("DEDUPE_SIMILARITY_THRESHOLD (%g) must be in (0, 1]", c.Pipeline.SimilarityThreshold))
	}
	validKeep := map[string]bool{"first": true, "last": true, "none": true}
	if !validKeep[strings.ToLower(c.Pipeline.Keep)] {
		errs = append(errs, fmt.Sprintf("DEDUPE_KEEP (%q) must be one of: first, last, none", c.Pipeline.Keep))
	}

	// Database validation
	if c.Database.Enabled() {
		if c.Database.Table == "" {
			errs = append(errs, "DB_TABLE must not be empty when DATABASE_URL is set")
		}
		if c.Database.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
		if c.Database.ConnectTimeout <= 0 {
			errs = append(errs, "DB_CONNECT_TIMEOUT must be positive")
		}
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Paths: {Source: %q, Intermediate: %q, Output: %q, Export: %q}, ",
		c.Paths.Source, c.Paths.Intermediate, c.Paths.Output, c.Paths.Export))
	b.WriteString(fmt.Sprintf("Pipeline: {IDSeed: %d, SimilarityThreshold: %g, Keep: %q}, ",
		c.Pipeline.IDSeed, c.Pipeline.SimilarityThreshold, c.Pipeline.Keep))
	if c.Database.Enabled() {
		b.WriteString(fmt.Sprintf("Database: {URL: [MASKED], Table: %q}, ", c.Database.Table))
	} else {
		b.WriteString("Database: {disabled}, ")
	}
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
