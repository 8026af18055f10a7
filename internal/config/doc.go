// Package config loads, normalizes, and validates the TOML configuration
// for aniharvest. Defaults mirror the sample config; path fields are tilde
// expanded and absolute after Load.
package config
