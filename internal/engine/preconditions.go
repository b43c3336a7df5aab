package engine

import (
	"context"
	"fmt"

	"conductor/internal/api"
	"conductor/pkg/logging"
)

// preconditionFailure describes the first gate that did not pass.
type preconditionFailure struct {
	checker     string
	description string
	message     string
}

// preconditionEvaluator runs a capability's ordered precondition list
// against the shared execution context.
type preconditionEvaluator struct {
	checkers *CheckerTable
}

// checkAll evaluates the preconditions strictly in declaration order and
// stops at the first failure; later preconditions are never evaluated once
// one fails. An empty or absent list passes trivially.
func (e *preconditionEvaluator) checkAll(ctx context.Context, preconditions []api.Precondition, execCtx map[string]interface{}) *preconditionFailure {
	for _, precondition := range preconditions {
		if failure := e.checkOne(ctx, precondition, execCtx); failure != nil {
			return failure
		}
	}
	return nil
}

// checkOne evaluates a single precondition. An unresolved checker reference
// is a failure, never a skip. An error returned by the checker is caught and
// reported as a failure embedding the error's message.
func (e *preconditionEvaluator) checkOne(ctx context.Context, precondition api.Precondition, execCtx map[string]interface{}) *preconditionFailure {
	checker, ok := e.checkers.Lookup(precondition.Checker)
	if !ok {
		return &preconditionFailure{
			checker:     precondition.Checker,
			description: precondition.Description,
			message:     fmt.Sprintf("precondition checker '%s' is not registered", precondition.Checker),
		}
	}

	passed, err := checker(ctx, execCtx)
	if err != nil {
		logging.Debug("Preconditions", "Checker %s errored: %v", precondition.Checker, err)
		return &preconditionFailure{
			checker:     precondition.Checker,
			description: precondition.Description,
			message:     fmt.Sprintf("precondition check failed: %v", err),
		}
	}
	if !passed {
		return &preconditionFailure{
			checker:     precondition.Checker,
			description: precondition.Description,
			message:     precondition.FailureMessage(),
		}
	}
	return nil
}
