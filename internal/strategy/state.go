package strategy

import (
	"conductor/internal/api"
)

// status tracks where an execution is in its lifecycle. succeeded, failed
// and failedRolledBack are terminal; paused is suspended and externally
// resumable.
type status string

const (
	statusRunning          status = "running"
	statusPaused           status = "paused"
	statusSucceeded        status = "succeeded"
	statusFailed           status = "failed"
	statusFailedRolledBack status = "failed-rolled-back"
)

// executedStep is one entry of the executed-step ledger: the intent as it
// was actually dispatched (merged parameters included), its result and the
// resolved capability. The ledger is what makes reverse-order rollback
// possible.
type executedStep struct {
	intent     api.Intent
	result     api.ExecutionResult
	capability *api.Capability
}

// executionState is the mutable state of one strategy execution. It is
// created when the execution begins, mutated in place by the orchestrator's
// single-threaded loop, and either reaches a terminal status or is parked in
// the token arena awaiting resume.
type executionState struct {
	strategy    api.Strategy
	stepIndex   int
	context     map[string]interface{}
	collected   map[int]map[string]interface{}
	ledger      []executedStep
	stepResults []api.ExecutionResult
	options     api.StrategyOptions
	status      status
}

func newExecutionState(strat api.Strategy, opts api.StrategyOptions) *executionState {
	execCtx := make(map[string]interface{}, len(opts.Context))
	for k, v := range opts.Context {
		execCtx[k] = v
	}
	return &executionState{
		strategy:  strat,
		context:   execCtx,
		collected: make(map[int]map[string]interface{}),
		options:   opts,
		status:    statusRunning,
	}
}

// collect merges newly supplied values into the collected-parameter map for
// the current step. The merge is shallow: later values overwrite same-named
// earlier ones.
func (s *executionState) collect(values map[string]interface{}) {
	bucket := s.collected[s.stepIndex]
	if bucket == nil {
		bucket = make(map[string]interface{}, len(values))
		s.collected[s.stepIndex] = bucket
	}
	for k, v := range values {
		bucket[k] = v
	}
}

// mergedParameters combines the step's provided intent parameters with the
// values collected for this index. Collected values take precedence.
func (s *executionState) mergedParameters(intent api.Intent) map[string]interface{} {
	merged := make(map[string]interface{}, len(intent.Parameters))
	for k, v := range intent.Parameters {
		merged[k] = v
	}
	for k, v := range s.collected[s.stepIndex] {
		merged[k] = v
	}
	return merged
}

// foldResult shallow-merges the result payload's nested data object into
// the accumulated context; later keys overwrite earlier ones. Payloads
// without a nested data object contribute nothing.
func (s *executionState) foldResult(payload interface{}) {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return
	}
	data, ok := m["data"].(map[string]interface{})
	if !ok {
		return
	}
	for k, v := range data {
		s.context[k] = v
	}
}
