package engine

import (
	"sort"
	"sync"

	"conductor/internal/api"
)

// HandlerTable is the mutable name-to-callable registry for business
// handlers. It is owned by one Engine instance: there is no process-wide
// registry, and registration after construction is allowed with
// last-writer-wins semantics.
type HandlerTable struct {
	mu       sync.RWMutex
	handlers map[string]api.Handler
}

// NewHandlerTable builds a table pre-populated with the given handlers.
func NewHandlerTable(handlers map[string]api.Handler) *HandlerTable {
	table := &HandlerTable{handlers: make(map[string]api.Handler, len(handlers))}
	for name, handler := range handlers {
		table.handlers[name] = handler
	}
	return table
}

// Register binds a handler to a reference, replacing any previous binding.
func (t *HandlerTable) Register(name string, handler api.Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[name] = handler
}

// Unregister removes a handler binding.
func (t *HandlerTable) Unregister(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.handlers, name)
}

// Lookup resolves a handler by reference.
func (t *HandlerTable) Lookup(name string) (api.Handler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	handler, ok := t.handlers[name]
	return handler, ok
}

// Has reports whether a handler is registered for the reference.
func (t *HandlerTable) Has(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Names returns the registered references in sorted order.
func (t *HandlerTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.handlers))
	for name := range t.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckerTable is the mutable name-to-callable registry for precondition
// checkers, with the same ownership and mutation semantics as HandlerTable.
type CheckerTable struct {
	mu       sync.RWMutex
	checkers map[string]api.Checker
}

// NewCheckerTable builds a table pre-populated with the given checkers.
func NewCheckerTable(checkers map[string]api.Checker) *CheckerTable {
	table := &CheckerTable{checkers: make(map[string]api.Checker, len(checkers))}
	for name, checker := range checkers {
		table.checkers[name] = checker
	}
	return table
}

// Register binds a checker to a reference, replacing any previous binding.
func (t *CheckerTable) Register(name string, checker api.Checker) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkers[name] = checker
}

// Unregister removes a checker binding.
func (t *CheckerTable) Unregister(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.checkers, name)
}

// Lookup resolves a checker by reference.
func (t *CheckerTable) Lookup(name string) (api.Checker, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	checker, ok := t.checkers[name]
	return checker, ok
}
