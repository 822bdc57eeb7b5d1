// Package config loads and validates YAML configuration for the ingestion
// pipeline.
//
// Loading is layered: Load parses the file with ${ENV} expansion,
// LoadWithDefaults fills optional fields, LoadAndValidate additionally
// rejects incomplete or inconsistent configuration. Binaries should use
// LoadAndValidate.
package config
