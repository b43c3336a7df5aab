// Package app assembles the application for the serve command: it loads the
// capability manifest, connects the tool bridge that backs handlers and
// checkers, constructs the execution engine and strategy orchestrator, and
// runs the MCP stdio surface alongside a manifest file watcher. Manifest
// changes are validated and hot-swapped; a bad edit never takes down the
// running catalog.
package app
