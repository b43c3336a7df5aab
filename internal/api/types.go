package api

import (
	"context"
)

// ParameterType enumerates the declared types a capability parameter can
// carry. Validation performs an exact type match per type name; see
// internal/validation for the concrete rules.
type ParameterType string

const (
	TypeString   ParameterType = "string"
	TypeNumber   ParameterType = "number"
	TypeBoolean  ParameterType = "boolean"
	TypeEnum     ParameterType = "enum"
	TypeObject   ParameterType = "object"
	TypeArray    ParameterType = "array"
	TypeFile     ParameterType = "file"
	TypeDate     ParameterType = "date"
	TypeTime     ParameterType = "time"
	TypeDateTime ParameterType = "datetime"
	TypeAny      ParameterType = "any"
)

// CollectionTiming declares when a parameter value must be supplied.
type CollectionTiming string

const (
	// CollectUpfront parameters must be present on the initiating intent.
	CollectUpfront CollectionTiming = "upfront"

	// CollectOnDemand parameters may be deferred past intent construction
	// and collected later through the strategy pause/resume flow. This is
	// the declared timing for sensitive values such as card data.
	CollectOnDemand CollectionTiming = "on-demand"
)

// Constraints defines the optional value constraints of a parameter.
// All fields are optional; absent fields impose no restriction.
type Constraints struct {
	// Min bounds the numeric value, or the string length for string types.
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`

	// Max bounds the numeric value, or the string length for string types.
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`

	// Pattern is a regular expression the string value must match.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Enum is the fixed value set the value must be a member of.
	Enum []interface{} `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// Parameter declares one named input of a capability, with its type,
// requiredness, optional constraints, collection timing and sensitivity.
type Parameter struct {
	// Name is the parameter's key inside an intent's parameter map
	Name string `yaml:"name" json:"name"`

	// Type is the declared parameter type
	Type ParameterType `yaml:"type" json:"type"`

	// Description provides human-readable documentation for the parameter
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Required indicates whether this parameter must be provided
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`

	// Constraints holds the optional constraint set applied after the type
	// check succeeds
	Constraints *Constraints `yaml:"constraints,omitempty" json:"constraints,omitempty"`

	// Collect declares when the value has to be supplied. An empty value
	// means upfront.
	Collect CollectionTiming `yaml:"collect,omitempty" json:"collect,omitempty"`

	// Sensitive marks values that must not be logged or echoed back, e.g.
	// card verification codes. Sensitive parameters are typically collected
	// on demand.
	Sensitive bool `yaml:"sensitive,omitempty" json:"sensitive,omitempty"`
}

// OnDemand reports whether the parameter's collection timing defers it past
// intent construction.
func (p Parameter) OnDemand() bool {
	return p.Collect == CollectOnDemand
}

// Precondition is a named boolean gate evaluated against the shared
// execution context before a capability dispatches.
type Precondition struct {
	// Checker is the reference resolved against the engine's checker table
	Checker string `yaml:"checker" json:"checker"`

	// Description documents what the gate verifies
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// ErrorMessage is shown when the check fails. Falls back to Description
	// when empty.
	ErrorMessage string `yaml:"errorMessage,omitempty" json:"errorMessage,omitempty"`
}

// FailureMessage returns the message reported when the precondition fails.
func (p Precondition) FailureMessage() string {
	if p.ErrorMessage != "" {
		return p.ErrorMessage
	}
	if p.Description != "" {
		return p.Description
	}
	return "precondition " + p.Checker + " failed"
}

// Capability is one named, declared action the host exposes: a parameter
// contract, a bound handler reference, optional ordered preconditions,
// declared side-effect names, and an optional undo-capability reference used
// for transactional rollback.
//
// Capabilities are owned by the manifest and are read-only at runtime.
type Capability struct {
	// ID is the unique, stable key of the capability
	ID string `yaml:"id" json:"id"`

	// DisplayName is the human-facing name shown in the capability graph
	DisplayName string `yaml:"displayName,omitempty" json:"displayName,omitempty"`

	// Description provides human-readable documentation for the action
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Parameters is the capability's parameter contract
	Parameters []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`

	// Handler is the primary handler reference resolved against the
	// engine's handler table
	Handler string `yaml:"handler" json:"handler"`

	// Preconditions are evaluated strictly in declaration order, fail-fast,
	// before the handler is dispatched
	Preconditions []Precondition `yaml:"preconditions,omitempty" json:"preconditions,omitempty"`

	// SideEffects names the externally visible effects this capability has.
	// They are echoed back in successful execution results.
	SideEffects []string `yaml:"sideEffects,omitempty" json:"sideEffects,omitempty"`

	// UndoCapability optionally references another capability in the same
	// manifest that reverses this one. Rollback of a completed step is only
	// possible when this is set.
	UndoCapability string `yaml:"undoCapability,omitempty" json:"undoCapability,omitempty"`
}

// Parameter returns the declared parameter with the given name, or nil.
func (c *Capability) Parameter(name string) *Parameter {
	for i := range c.Parameters {
		if c.Parameters[i].Name == name {
			return &c.Parameters[i]
		}
	}
	return nil
}

// Manifest is the already-validated capability catalog handed to the engine
// at construction. Structural and semantic validation of the manifest itself
// happens upstream; the engine only performs the referential checks its own
// invariants demand.
type Manifest struct {
	// Name identifies the host application exposing the catalog
	Name string `yaml:"name" json:"name"`

	// Description documents the application for planner discovery
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Capabilities is the catalog of declared actions
	Capabilities []Capability `yaml:"capabilities" json:"capabilities"`
}

// Intent is a request to invoke one capability with concrete parameter
// values. Intents are ephemeral and constructed per call.
type Intent struct {
	// CapabilityID references the capability to invoke
	CapabilityID string `yaml:"capability" json:"capability"`

	// Parameters maps parameter names to provided values
	Parameters map[string]interface{} `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Strategy is an ordered, immutable sequence of intents representing one
// logical multi-step operation.
type Strategy []Intent

// Handler is the functional type for business handlers. A handler receives
// the merged parameter values of the intent being dispatched and returns an
// opaque result payload.
//
// Handlers must tolerate continuing to run after a timeout has been reported
// to the caller: the bounded executor abandons a timed-out invocation rather
// than terminating it, and discards its eventual outcome.
type Handler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Checker is the functional type for precondition checkers. A checker
// receives the shared execution context and reports whether the gate passes.
// A returned error is treated as a failed check, never propagated.
type Checker func(ctx context.Context, execCtx map[string]interface{}) (bool, error)
