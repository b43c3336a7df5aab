package strategy

import (
	"context"
	"fmt"

	"conductor/internal/api"
	"conductor/internal/engine"
	"conductor/internal/template"
	"conductor/pkg/logging"
)

// Orchestrator runs an ordered list of intents as one logical operation:
// strictly sequential execution, context accumulation across steps,
// progressive collection of on-demand parameters through pause/resume, and
// saga-style compensating rollback for transactional strategies.
//
// Distinct strategy executions may run concurrently against one
// Orchestrator; within a single execution, steps never run concurrently and
// ordering (including rollback ordering) is a correctness requirement.
type Orchestrator struct {
	engine   *engine.Engine
	template *template.Engine
	parked   *tokenArena
}

// New creates an orchestrator over the given execution engine.
func New(eng *engine.Engine) *Orchestrator {
	return &Orchestrator{
		engine:   eng,
		template: template.New(),
		parked:   newTokenArena(),
	}
}

// Execute runs a strategy from its first step.
func (o *Orchestrator) Execute(ctx context.Context, strat api.Strategy, opts api.StrategyOptions) api.StrategyResult {
	logging.Debug("Orchestrator", "Executing strategy with %d steps (transactional=%t)", len(strat), opts.Transactional)
	state := newExecutionState(strat, opts)
	return o.run(ctx, state)
}

// Resume continues a paused strategy. An unknown or already-consumed token
// yields INVALID_RESUME_TOKEN without mutating any state. On a hit the
// token is consumed, the supplied values are merged into the collected
// parameters of the parked step, and the main loop continues from that same
// index. Resumed values are not independently re-validated here; they go
// through the ordinary per-step validation on the next dispatch, so
// malformed values surface as an ordinary VALIDATION_ERROR.
func (o *Orchestrator) Resume(ctx context.Context, token string, values map[string]interface{}) api.StrategyResult {
	state, ok := o.parked.take(token)
	if !ok {
		return api.StrategyResult{
			Success: false,
			Error: &api.StrategyError{
				Code:    api.ErrorCodeInvalidResumeToken,
				Message: "invalid or already used resume token",
			},
		}
	}

	logging.Debug("Orchestrator", "Resuming strategy at step %d with %d collected values", state.stepIndex, len(values))
	state.status = statusRunning
	state.collect(values)
	return o.run(ctx, state)
}

// PausedCount reports how many executions are currently parked awaiting
// resume.
func (o *Orchestrator) PausedCount() int {
	return o.parked.size()
}

// run drives the main loop from the state's current step index to a
// terminal or paused result.
func (o *Orchestrator) run(ctx context.Context, state *executionState) api.StrategyResult {
	directory := o.engine.Directory()

	for state.stepIndex < len(state.strategy) {
		intent := state.strategy[state.stepIndex]

		capability, ok := directory.Resolve(intent.CapabilityID)
		if !ok {
			return o.fail(ctx, state, api.ErrorCodeCapabilityNotFound,
				fmt.Sprintf("unknown capability '%s'", intent.CapabilityID))
		}

		if missing := missingOnDemand(capability, intent.Parameters, state.collected[state.stepIndex]); len(missing) > 0 {
			return o.pause(state, missing)
		}

		merged := state.mergedParameters(intent)
		resolved, err := o.template.ReplaceMap(merged, state.context)
		if err != nil {
			return o.fail(ctx, state, api.ErrorCodeValidation,
				fmt.Sprintf("failed to resolve parameter references for step %d: %v", state.stepIndex, err))
		}

		result := o.engine.Execute(ctx, api.Intent{
			CapabilityID: intent.CapabilityID,
			Parameters:   resolved,
		}, api.ExecuteOptions{
			Timeout: state.options.Timeout,
			Context: state.context,
		})
		state.stepResults = append(state.stepResults, result)

		if result.Success {
			state.ledger = append(state.ledger, executedStep{
				intent:     api.Intent{CapabilityID: intent.CapabilityID, Parameters: resolved},
				result:     result,
				capability: capability,
			})
			state.foldResult(result.Data)
			state.stepIndex++
			continue
		}

		if state.options.ContinueOnError && nonCritical(result.Error) {
			logging.Debug("Orchestrator", "Step %d failed non-critically (%s), continuing", state.stepIndex, result.Error.Code)
			state.stepIndex++
			continue
		}

		return o.fail(ctx, state, result.Error.Code, result.Error.Message)
	}

	state.status = statusSucceeded
	return api.StrategyResult{
		Success:        true,
		StepResults:    state.stepResults,
		CompletedSteps: len(state.ledger),
	}
}

// pause snapshots the execution, mints a fresh resume token and returns the
// paused result enumerating every still-missing on-demand parameter. The
// state is not mutated further until resumed.
func (o *Orchestrator) pause(state *executionState, missing []api.Parameter) api.StrategyResult {
	state.status = statusPaused
	token := o.parked.park(state)

	capability := state.strategy[state.stepIndex].CapabilityID
	inputs := make([]api.RequiredInput, 0, len(missing))
	for _, param := range missing {
		inputs = append(inputs, api.RequiredInput{
			CapabilityID: capability,
			Parameter:    param.Name,
			Description:  param.Description,
			Type:         param.Type,
			Sensitive:    param.Sensitive,
		})
	}

	logging.Info("Orchestrator", "Strategy paused at step %d awaiting %d on-demand parameters", state.stepIndex, len(inputs))
	return api.StrategyResult{
		Success:        false,
		StepResults:    state.stepResults,
		CompletedSteps: len(state.ledger),
		Paused:         true,
		RequiredInputs: inputs,
		ResumeToken:    token,
	}
}

// missingOnDemand computes the required on-demand parameters not yet
// satisfied by the union of provided and already-collected values.
func missingOnDemand(capability *api.Capability, provided, collected map[string]interface{}) []api.Parameter {
	var missing []api.Parameter
	for _, param := range capability.Parameters {
		if !param.Required || !param.OnDemand() {
			continue
		}
		if provided[param.Name] != nil {
			continue
		}
		if collected[param.Name] != nil {
			continue
		}
		missing = append(missing, param)
	}
	return missing
}

// nonCritical classifies failures the continueOnError option may advance
// past. Only precondition-style failures qualify; validation errors,
// handler errors and timeouts always abort the strategy.
func nonCritical(execErr *api.ExecutionError) bool {
	return execErr != nil && execErr.Code == api.ErrorCodePreconditionFailed
}
