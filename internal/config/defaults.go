package config

import "time"

const (
	// DefaultManifestFile is the manifest filename looked up next to config.yaml.
	DefaultManifestFile = "capabilities.yaml"

	// DefaultEngineTimeout bounds handler execution when no timeout is given.
	DefaultEngineTimeout = 5 * time.Second
)

// GetDefaultConfig returns the default configuration for conductor.
func GetDefaultConfig() ConductorConfig {
	return ConductorConfig{
		Manifest: DefaultManifestFile,
		LogLevel: "info",
		Engine: EngineConfig{
			DefaultTimeout: Duration(DefaultEngineTimeout),
		},
	}
}
