package catalog

import (
	"conductor/internal/api"
)

// Graph derives the read-only capability graph from the manifest. The view
// is pure and deterministic: capabilities and parameters appear in manifest
// declaration order, and nothing outside the manifest contributes to it.
func (d *Directory) Graph() api.CapabilityGraph {
	name, description := d.Application()
	graph := api.CapabilityGraph{
		Application:  name,
		Description:  description,
		Capabilities: make([]api.CapabilitySummary, 0, len(d.manifest.Capabilities)),
	}

	for i := range d.manifest.Capabilities {
		capability := &d.manifest.Capabilities[i]
		summary := api.CapabilitySummary{
			ID:          capability.ID,
			DisplayName: capability.DisplayName,
			Description: capability.Description,
		}
		for _, param := range capability.Parameters {
			summary.Parameters = append(summary.Parameters, api.ParameterSummary{
				Name:        param.Name,
				Type:        param.Type,
				Description: param.Description,
				Required:    param.Required,
				Collect:     param.Collect,
				Sensitive:   param.Sensitive,
			})
		}
		graph.Capabilities = append(graph.Capabilities, summary)
	}

	return graph
}
