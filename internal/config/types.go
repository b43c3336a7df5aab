package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ConductorConfig is the top-level configuration structure for conductor.
type ConductorConfig struct {
	Manifest string       `yaml:"manifest,omitempty"` // Path to the capability manifest (default: capabilities.yaml next to config.yaml)
	LogLevel string       `yaml:"logLevel,omitempty"` // debug, info, warn or error (default: info)
	Engine   EngineConfig `yaml:"engine,omitempty"`
	Bridge   BridgeConfig `yaml:"bridge,omitempty"`
}

// EngineConfig tunes the execution engine.
type EngineConfig struct {
	DefaultTimeout Duration `yaml:"defaultTimeout,omitempty"` // Handler deadline when the caller supplies none (default: 5s)
}

// Duration is a time.Duration that unmarshals from YAML duration strings
// such as "5s" or "250ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// BridgeConfig describes an external MCP tool server whose tools back
// capability handlers and precondition checkers. When Command is empty no
// bridge is started and handlers must be registered programmatically.
type BridgeConfig struct {
	Command  string            `yaml:"command,omitempty"`
	Args     []string          `yaml:"args,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
	Handlers map[string]string `yaml:"handlers,omitempty"` // handler ref -> tool name (defaults to the ref)
	Checkers map[string]string `yaml:"checkers,omitempty"` // checker ref -> tool name (defaults to the ref)
}
