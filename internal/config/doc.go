// Package config loads conductor's configuration. Configuration lives in a
// single directory containing config.yaml and the capability manifest; every
// field has a default so a missing config.yaml is valid.
package config
