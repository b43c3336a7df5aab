package manifest

import (
	"fmt"
	"os"

	"conductor/internal/api"
	"conductor/internal/catalog"
	"conductor/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Load reads a capability manifest from a YAML file and applies defaults.
//
// Structural and semantic validation of the manifest (schema shape, format
// rules) is the host's concern and happens upstream; Load only enforces the
// referential invariants the engine depends on (unique ids and resolvable
// undo-capability references) by building a throwaway directory.
func Load(path string) (*api.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var manifest api.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	applyDefaults(&manifest)

	if _, err := catalog.New(&manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	logging.Info("Manifest", "Loaded manifest %s with %d capabilities", path, len(manifest.Capabilities))
	return &manifest, nil
}

func applyDefaults(manifest *api.Manifest) {
	for i := range manifest.Capabilities {
		capability := &manifest.Capabilities[i]
		if capability.DisplayName == "" {
			capability.DisplayName = capability.ID
		}
		for j := range capability.Parameters {
			param := &capability.Parameters[j]
			if param.Collect == "" {
				param.Collect = api.CollectUpfront
			}
		}
	}
}
