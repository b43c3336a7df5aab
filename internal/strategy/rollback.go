package strategy

import (
	"context"
	"fmt"

	"conductor/internal/api"
	"conductor/pkg/logging"
)

// fail builds the terminal failure result and, for transactional strategies
// with at least one recorded step, runs the compensating rollback walk. The
// top-level error always reflects the original triggering failure,
// independent of how rollback went.
func (o *Orchestrator) fail(ctx context.Context, state *executionState, code api.ErrorCode, message string) api.StrategyResult {
	state.status = statusFailed
	result := api.StrategyResult{
		Success:        false,
		StepResults:    state.stepResults,
		CompletedSteps: len(state.ledger),
		Error: &api.StrategyError{
			Code:      code,
			Message:   message,
			StepIndex: state.stepIndex,
		},
	}

	if !state.options.Transactional || len(state.ledger) == 0 {
		return result
	}

	state.status = statusFailedRolledBack
	result.RolledBack = true
	result.RollbackErrors = o.rollback(ctx, state)
	return result
}

// rollback walks the executed-step ledger in strict reverse order, undoing
// each step through its capability's declared undo capability with the
// parameters the step originally dispatched with.
//
// A step without an undo capability is recorded as a rollback error and the
// walk continues to the next older step. A failing undo stops the walk
// immediately: older steps are left un-rolled-back. Rollback errors are
// accumulated and reported as data, never raised.
func (o *Orchestrator) rollback(ctx context.Context, state *executionState) []string {
	errs := []string{}

	for i := len(state.ledger) - 1; i >= 0; i-- {
		step := state.ledger[i]

		if step.capability.UndoCapability == "" {
			errs = append(errs, fmt.Sprintf("step %d (%s) declares no undo capability", i, step.capability.ID))
			continue
		}

		logging.Debug("Orchestrator", "Rolling back step %d via %s", i, step.capability.UndoCapability)
		undoResult := o.engine.Execute(ctx, api.Intent{
			CapabilityID: step.capability.UndoCapability,
			Parameters:   step.intent.Parameters,
		}, api.ExecuteOptions{
			Timeout: state.options.Timeout,
			Context: state.context,
		})

		if !undoResult.Success {
			errs = append(errs, fmt.Sprintf("failed to undo step %d (%s): %s",
				i, step.capability.ID, undoResult.Error.Message))
			// Stop at the first failing undo; older steps stay applied.
			break
		}
	}

	return errs
}
