package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"conductor/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/conductor"
	configFileName = "config.yaml"
)

// GetDefaultConfigPathOrPanic returns the per-user configuration directory.
func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from the specified directory. The directory
// should contain config.yaml and, by default, the capability manifest. A
// missing config.yaml is not an error: defaults apply.
func LoadConfig(configPath string) (ConductorConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			config.Manifest = filepath.Join(configPath, config.Manifest)
			return config, nil
		}
		logging.Info("ConfigLoader", "Error loading config.yaml from %s: %s", configFilePath, err)
		return ConductorConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ConductorConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	if config.Manifest == "" {
		config.Manifest = DefaultManifestFile
	}
	if !filepath.IsAbs(config.Manifest) {
		config.Manifest = filepath.Join(configPath, config.Manifest)
	}
	if config.Engine.DefaultTimeout <= 0 {
		config.Engine.DefaultTimeout = Duration(DefaultEngineTimeout)
	}
	logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}
