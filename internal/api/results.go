package api

import (
	"time"
)

// ErrorCode classifies execution failures. Validation and precondition
// failures are always returned as results, never raised; handler panics and
// errors are converted to EXECUTION_ERROR and never escape the engine.
type ErrorCode string

const (
	// ErrorCodeValidation covers structural, type and constraint failures,
	// including an unknown capability id on single dispatch.
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrorCodePreconditionFailed is reported when a checker returned false,
	// returned an error, or could not be resolved.
	ErrorCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"

	// ErrorCodeHandlerNotFound is a defensive dispatch-time classification;
	// construction-time wiring checks make it unreachable in practice.
	ErrorCodeHandlerNotFound ErrorCode = "HANDLER_NOT_FOUND"

	// ErrorCodeExecution is reported when the handler returned an error or
	// panicked.
	ErrorCodeExecution ErrorCode = "EXECUTION_ERROR"

	// ErrorCodeTimeout is reported when the handler exceeded its deadline.
	ErrorCodeTimeout ErrorCode = "TIMEOUT"

	// ErrorCodeCapabilityNotFound is reported by the strategy layer when a
	// step references a capability id absent from the directory.
	ErrorCodeCapabilityNotFound ErrorCode = "CAPABILITY_NOT_FOUND"

	// ErrorCodeInvalidResumeToken is reported when a resume token does not
	// reference a parked strategy (unknown, or already consumed).
	ErrorCodeInvalidResumeToken ErrorCode = "INVALID_RESUME_TOKEN"
)

// ExecutionError carries the failure half of an execution result.
type ExecutionError struct {
	// Code classifies the failure
	Code ErrorCode `json:"code"`

	// Message is the human-readable failure description
	Message string `json:"message"`

	// Details optionally carries structured failure context
	Details map[string]interface{} `json:"details,omitempty"`

	// CapabilityID names the capability the failure originated from
	CapabilityID string `json:"capability,omitempty"`
}

// ExecutionResult is the uniform envelope returned by single-intent
// dispatch. Exactly one of Data/Error is meaningful depending on Success;
// Duration is recorded in both cases, measured from invocation start.
type ExecutionResult struct {
	// Success indicates whether the dispatch completed successfully
	Success bool `json:"success"`

	// Data is the handler's opaque result payload on success
	Data interface{} `json:"data,omitempty"`

	// SideEffects echoes the capability's declared side-effect names
	SideEffects []string `json:"sideEffects,omitempty"`

	// Duration is the elapsed wall-clock time of the dispatch
	Duration time.Duration `json:"duration"`

	// Error describes the failure when Success is false
	Error *ExecutionError `json:"error,omitempty"`

	// Suggestions optionally carries remediation hints for the caller
	Suggestions []string `json:"suggestions,omitempty"`
}

// ExecuteOptions are the per-call options of single-intent dispatch.
type ExecuteOptions struct {
	// Timeout overrides the default handler deadline when positive
	Timeout time.Duration

	// Context is the shared value bag preconditions and handlers observe
	Context map[string]interface{}
}

// StrategyOptions are the options a strategy execution is started with.
// They travel with the execution state across pause/resume.
type StrategyOptions struct {
	// Timeout overrides the default per-step handler deadline when positive
	Timeout time.Duration

	// Context seeds the accumulated shared context
	Context map[string]interface{}

	// Transactional enables reverse-order compensating rollback on failure
	Transactional bool

	// ContinueOnError advances past precondition-style non-critical step
	// failures instead of aborting the strategy
	ContinueOnError bool
}

// RequiredInput describes one still-missing on-demand parameter reported
// with a paused strategy result.
type RequiredInput struct {
	// CapabilityID is the capability the parameter belongs to
	CapabilityID string `json:"capability"`

	// Parameter is the declared parameter name
	Parameter string `json:"parameter"`

	// Description documents the parameter for the collecting caller
	Description string `json:"description,omitempty"`

	// Type is the declared parameter type
	Type ParameterType `json:"type"`

	// Sensitive flags values that must be collected over a secure channel
	Sensitive bool `json:"isSensitive"`
}

// StrategyError describes the terminal failure of a strategy execution.
type StrategyError struct {
	// Code classifies the triggering failure
	Code ErrorCode `json:"code"`

	// Message is the triggering failure's description
	Message string `json:"message"`

	// StepIndex is the zero-based index the failure occurred at
	StepIndex int `json:"stepIndex"`
}

// StrategyResult is the envelope returned by strategy execution and resume.
//
// A paused result carries Paused=true, the set of required inputs and a
// single-use resume token. A terminal failure carries Error and, for
// transactional strategies, the rollback outcome. The top-level error always
// reflects the original triggering failure, independent of how rollback
// went.
type StrategyResult struct {
	// Success indicates the whole strategy ran to completion
	Success bool `json:"success"`

	// StepResults holds the per-step results recorded so far, in order
	StepResults []ExecutionResult `json:"stepResults,omitempty"`

	// CompletedSteps counts the steps that ran to success
	CompletedSteps int `json:"completedSteps"`

	// Paused marks a suspended, externally resumable execution
	Paused bool `json:"paused,omitempty"`

	// RequiredInputs enumerates the on-demand parameters still missing at
	// the paused step
	RequiredInputs []RequiredInput `json:"requiredInputs,omitempty"`

	// ResumeToken is the single-use handle for resuming a paused execution
	ResumeToken string `json:"resumeToken,omitempty"`

	// Error describes the triggering failure of a failed strategy
	Error *StrategyError `json:"error,omitempty"`

	// RolledBack indicates the compensating rollback walk was attempted
	RolledBack bool `json:"rolledBack,omitempty"`

	// RollbackErrors lists the problems hit during the rollback walk; empty
	// when every undone step succeeded
	RollbackErrors []string `json:"rollbackErrors,omitempty"`
}
