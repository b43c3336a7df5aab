// Package engine implements single-intent capability dispatch: the
// validate → precondition-check → bounded-execution → result-shaping
// pipeline, plus the handler and checker registries it resolves against.
//
// The pipeline ordering is part of the contract. Validation failures return
// before any precondition runs; precondition failures return before the
// handler is looked up; the handler only ever runs once every gate passed.
// No side effects are attempted for an invalid intent.
//
// Concurrency: distinct Execute calls may run concurrently against one
// Engine. The directory is read-only; the handler and checker tables are
// mutex-guarded with last-writer-wins registration, so registering during
// in-flight executions is safe but which binding a given dispatch observes
// is unspecified.
package engine
