// Package mcpserver exposes the execution engine over the Model Context
// Protocol. It registers five tools on a stdio MCP server:
//
//   - capability_list: the full capability graph for discovery
//   - capability_describe: one capability's parameters and preconditions
//   - intent_execute: single-intent execution through the engine pipeline
//   - strategy_execute: multi-step orchestration with optional rollback
//   - strategy_resume: resume a paused strategy with collected values
//
// Execution failures are returned as tool results with IsError set, not as
// protocol errors, so callers always receive the shaped result payload.
package mcpserver
