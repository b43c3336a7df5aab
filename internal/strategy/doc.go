// Package strategy implements the multi-step orchestrator: sequential
// execution of an ordered intent list through the execution engine, with
// context accumulation, pause/resume collection of on-demand parameters and
// saga-style compensating rollback.
//
// State machine: an execution starts running at step 0 and ends succeeded,
// failed, or failed-rolled-back. A step whose required on-demand parameters
// are not yet satisfied parks the execution in an in-memory arena behind a
// single-use resume token; resuming consumes the token and continues the
// loop at the same index. Paused executions survive only for the process
// lifetime; persistence across restarts is out of scope.
//
// Rollback undoes recorded steps in strict reverse chronological order,
// each through its capability's declared undo capability with the step's
// original parameters, and halts at the first failing undo.
package strategy
