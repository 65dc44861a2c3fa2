// Package config loads, normalizes, and validates curator configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CURATOR_LIBRARY_DIR. The Config type centralizes every knob the CLI needs,
// allowing library/data directories and media classification rules to be
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical extension sets, and clear validation errors.
package config
