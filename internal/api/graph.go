package api

// CapabilityGraph is the read-only discovery view derived from the manifest
// alone. It is what an external planner consumes to learn which actions the
// host exposes and how to parameterize them.
//
// The graph is pure: for a fixed manifest the same graph is produced every
// time, in a deterministic order.
type CapabilityGraph struct {
	// Application is the host application name from the manifest
	Application string `json:"application"`

	// Description is the application description from the manifest
	Description string `json:"description,omitempty"`

	// Capabilities summarizes every capability in manifest order
	Capabilities []CapabilitySummary `json:"capabilities"`
}

// CapabilitySummary is the per-capability slice of the graph.
type CapabilitySummary struct {
	ID          string             `json:"id"`
	DisplayName string             `json:"displayName,omitempty"`
	Description string             `json:"description,omitempty"`
	Parameters  []ParameterSummary `json:"parameters,omitempty"`
}

// ParameterSummary is the planner-facing projection of a parameter
// declaration. Constraint internals are deliberately not exposed; the
// planner learns them through validation errors.
type ParameterSummary struct {
	Name        string           `json:"name"`
	Type        ParameterType    `json:"type"`
	Description string           `json:"description,omitempty"`
	Required    bool             `json:"required"`
	Collect     CollectionTiming `json:"collect,omitempty"`
	Sensitive   bool             `json:"isSensitive,omitempty"`
}
