package catalog

import (
	"fmt"

	"conductor/internal/api"
)

// Directory resolves capability definitions by id from the manifest. It is
// built once at engine construction and read-only afterwards, which is what
// lets concurrent executions share it without coordination.
type Directory struct {
	manifest *api.Manifest
	byID     map[string]*api.Capability
}

// New builds a directory from the manifest, enforcing the referential
// invariants the engine depends on: ids are unique and every declared
// undo-capability id resolves to another capability in the same manifest.
func New(manifest *api.Manifest) (*Directory, error) {
	byID := make(map[string]*api.Capability, len(manifest.Capabilities))
	for i := range manifest.Capabilities {
		capability := &manifest.Capabilities[i]
		if capability.ID == "" {
			return nil, fmt.Errorf("manifest contains a capability without an id")
		}
		if _, exists := byID[capability.ID]; exists {
			return nil, fmt.Errorf("duplicate capability id '%s'", capability.ID)
		}
		byID[capability.ID] = capability
	}

	for _, capability := range byID {
		if capability.UndoCapability == "" {
			continue
		}
		if _, ok := byID[capability.UndoCapability]; !ok {
			return nil, fmt.Errorf("capability '%s' declares unknown undo capability '%s'",
				capability.ID, capability.UndoCapability)
		}
	}

	return &Directory{manifest: manifest, byID: byID}, nil
}

// Resolve returns the capability with the given id.
func (d *Directory) Resolve(id string) (*api.Capability, bool) {
	capability, ok := d.byID[id]
	return capability, ok
}

// Undo returns the capability that undoes the given one, when declared.
func (d *Directory) Undo(capability *api.Capability) (*api.Capability, bool) {
	if capability.UndoCapability == "" {
		return nil, false
	}
	return d.Resolve(capability.UndoCapability)
}

// IDs enumerates every capability id in manifest order.
func (d *Directory) IDs() []string {
	ids := make([]string, 0, len(d.manifest.Capabilities))
	for i := range d.manifest.Capabilities {
		ids = append(ids, d.manifest.Capabilities[i].ID)
	}
	return ids
}

// Capabilities returns the catalog in manifest order.
func (d *Directory) Capabilities() []api.Capability {
	return d.manifest.Capabilities
}

// Application returns the manifest's application name and description.
func (d *Directory) Application() (string, string) {
	return d.manifest.Name, d.manifest.Description
}
