// Package logging provides the structured logging facility used across
// conductor. It wraps log/slog with a subsystem-tagged, printf-style API so
// call sites stay short:
//
//	logging.Debug("Engine", "Dispatching capability %s", id)
//	logging.Error("Orchestrator", err, "Step %d failed", idx)
//
// Init must be called once at startup with the minimum level and output
// writer. Because conductor can run as an MCP server on stdio, log output
// always goes to stderr in server mode.
package logging
