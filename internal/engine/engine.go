package engine

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"conductor/internal/api"
	"conductor/internal/catalog"
	"conductor/internal/validation"
	"conductor/pkg/logging"
)

// Engine composes intent validation, the capability directory, precondition
// evaluation, bounded execution and result shaping into single-intent
// dispatch.
//
// All business failures come back as ExecutionResult values; Execute never
// returns a Go error. The one fatal path is construction: New fails when any
// capability's primary handler, or the handler of its declared undo
// capability, is not present in the supplied handler map. Wiring mistakes
// must surface before the first intent runs, not mid-plan.
type Engine struct {
	mu             sync.RWMutex
	directory      *catalog.Directory
	handlers       *HandlerTable
	checkers       *CheckerTable
	preconditions  *preconditionEvaluator
	defaultTimeout time.Duration
}

// New builds an engine over an already-validated manifest directory with
// the supplied handler and checker maps. The checker map may be nil when
// the manifest declares no preconditions.
func New(directory *catalog.Directory, handlers map[string]api.Handler, checkers map[string]api.Checker) (*Engine, error) {
	handlerTable := NewHandlerTable(handlers)
	checkerTable := NewCheckerTable(checkers)

	if err := verifyWiring(directory, handlerTable); err != nil {
		return nil, err
	}

	return &Engine{
		directory:      directory,
		handlers:       handlerTable,
		checkers:       checkerTable,
		preconditions:  &preconditionEvaluator{checkers: checkerTable},
		defaultTimeout: DefaultTimeout,
	}, nil
}

// verifyWiring checks that every capability's primary handler reference,
// and the handler reference resolved through its undo capability, is
// registered. Missing references are collected so the error names all of
// them at once.
func verifyWiring(directory *catalog.Directory, handlers *HandlerTable) error {
	missing := map[string]bool{}
	for _, capability := range directory.Capabilities() {
		if !handlers.Has(capability.Handler) {
			missing[capability.Handler] = true
		}
		if undo, ok := directory.Undo(&capability); ok {
			if !handlers.Has(undo.Handler) {
				missing[undo.Handler] = true
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	refs := make([]string, 0, len(missing))
	for ref := range missing {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return &api.WiringError{Missing: refs}
}

// Directory exposes the engine's capability directory.
func (e *Engine) Directory() *catalog.Directory {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.directory
}

// Reload swaps in a new capability directory, typically after the manifest
// file changed on disk. The same wiring check as construction applies; on
// failure the engine keeps serving the previous directory.
func (e *Engine) Reload(directory *catalog.Directory) error {
	if err := verifyWiring(directory, e.handlers); err != nil {
		return err
	}
	e.mu.Lock()
	e.directory = directory
	e.mu.Unlock()
	logging.Info("Engine", "Capability directory reloaded (%d capabilities)", len(directory.Capabilities()))
	return nil
}

// RegisterHandler binds a handler after construction, last writer wins.
func (e *Engine) RegisterHandler(name string, handler api.Handler) {
	e.handlers.Register(name, handler)
}

// RegisterChecker binds a precondition checker after construction.
func (e *Engine) RegisterChecker(name string, checker api.Checker) {
	e.checkers.Register(name, checker)
}

// SetDefaultTimeout overrides the handler deadline applied when execute
// options carry none. Values <= 0 are ignored.
func (e *Engine) SetDefaultTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.defaultTimeout = timeout
}

// Execute dispatches a single intent through the full pipeline: structural
// and parameter validation, capability resolution, precondition gating,
// bounded handler execution, result shaping.
func (e *Engine) Execute(ctx context.Context, intent api.Intent, opts api.ExecuteOptions) api.ExecutionResult {
	start := time.Now()
	directory := e.Directory()

	if errs := validation.ValidateIntent(intent, directory, validation.Options{}); len(errs) > 0 {
		return shapeFailure(intent.CapabilityID, api.ErrorCodeValidation,
			strings.Join(errs, "; "), nil, time.Since(start))
	}

	capability, ok := directory.Resolve(intent.CapabilityID)
	if !ok {
		// Unreachable after validation.
		return shapeFailure(intent.CapabilityID, api.ErrorCodeValidation,
			"unknown capability '"+intent.CapabilityID+"'", nil, time.Since(start))
	}

	execCtx := opts.Context
	if execCtx == nil {
		execCtx = map[string]interface{}{}
	}
	if failure := e.preconditions.checkAll(ctx, capability.Preconditions, execCtx); failure != nil {
		logging.Debug("Engine", "Precondition %s blocked capability %s", failure.checker, capability.ID)
		return shapeFailure(capability.ID, api.ErrorCodePreconditionFailed, failure.message,
			map[string]interface{}{
				"checker":     failure.checker,
				"description": failure.description,
			}, time.Since(start))
	}

	handler, ok := e.handlers.Lookup(capability.Handler)
	if !ok {
		// Construction-time wiring checks make this unreachable unless the
		// handler was unregistered mid-flight.
		return shapeFailure(capability.ID, api.ErrorCodeHandlerNotFound,
			"handler '"+capability.Handler+"' is not registered", nil, time.Since(start))
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		e.mu.RLock()
		timeout = e.defaultTimeout
		e.mu.RUnlock()
	}

	logging.Debug("Engine", "Dispatching capability %s (timeout %s)", capability.ID, timeout)
	out := executeBounded(ctx, handler, intent.Parameters, timeout)
	if out.timedOut || out.err != nil {
		return shapeOutcomeFailure(capability, out, timeout)
	}
	return shapeSuccess(capability, out.value, out.duration)
}
