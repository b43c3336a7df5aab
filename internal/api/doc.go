// Package api defines the shared contract types of conductor: the
// capability manifest model, intents and strategies, the execution result
// envelopes, the error-code taxonomy, and the planner-facing capability
// graph view.
//
// The package carries no behavior beyond small accessors. All execution
// semantics live in internal/engine and internal/strategy; validation rules
// live in internal/validation. Keeping the contract in one dependency-free
// package lets every subsystem (engine, orchestrator, catalog, MCP surface,
// CLI) share types without import cycles.
//
// Error propagation policy: business failures such as validation errors,
// precondition failures, handler errors and timeouts travel as result values
// (ExecutionResult / StrategyResult with an error payload), never as Go
// errors. Go errors are reserved for caller mistakes (WiringError at
// construction) and infrastructure problems (manifest loading, transport).
package api
