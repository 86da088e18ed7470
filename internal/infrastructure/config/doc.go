// Package config loads and validates Plain Automation's configuration.
//
// Configuration comes from three layers, each overriding the last:
// hardcoded defaults, a YAML file, and PLAINAUTO_* environment
// variables. Validation runs after all layers are applied, so a bad
// file can still be rescued by environment overrides.
package config
