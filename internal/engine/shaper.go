package engine

import (
	"time"

	"conductor/internal/api"
)

// Result shaping maps a raw outcome plus capability metadata into the
// uniform ExecutionResult envelope. Keeping the mapping in one place is what
// guarantees the declared side-effect names travel with every success and
// the error taxonomy stays consistent across the dispatch pipeline.

func shapeSuccess(capability *api.Capability, value interface{}, duration time.Duration) api.ExecutionResult {
	return api.ExecutionResult{
		Success:     true,
		Data:        value,
		SideEffects: capability.SideEffects,
		Duration:    duration,
	}
}

func shapeOutcomeFailure(capability *api.Capability, out outcome, timeout time.Duration) api.ExecutionResult {
	if out.timedOut {
		return shapeFailure(capability.ID, api.ErrorCodeTimeout,
			"execution exceeded timeout of "+timeout.String(), nil, out.duration)
	}
	message := "unknown error"
	if out.err != nil {
		message = out.err.Error()
	}
	return shapeFailure(capability.ID, api.ErrorCodeExecution, message, nil, out.duration)
}

func shapeFailure(capabilityID string, code api.ErrorCode, message string, details map[string]interface{}, duration time.Duration) api.ExecutionResult {
	return api.ExecutionResult{
		Success:  false,
		Duration: duration,
		Error: &api.ExecutionError{
			Code:         code,
			Message:      message,
			Details:      details,
			CapabilityID: capabilityID,
		},
	}
}
