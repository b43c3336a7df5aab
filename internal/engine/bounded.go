package engine

import (
	"fmt"
	"time"

	"conductor/internal/api"
	"conductor/pkg/logging"

	"context"
)

// DefaultTimeout bounds handler execution when the caller supplies none.
const DefaultTimeout = 5 * time.Second

// outcome classifies a single bounded handler invocation. Exactly one of
// the three cases holds: completed (err nil), failed (err set), timed out.
// Duration is measured from invocation start in every case.
type outcome struct {
	value    interface{}
	err      error
	timedOut bool
	duration time.Duration
}

// executeBounded races the handler invocation against a timer. If the timer
// fires first the invocation is abandoned, not terminated: the goroutine
// keeps running and its eventual result is discarded. Handlers are required
// to be safe to abandon mid-flight; that property is part of the handler
// contract, not something the executor can enforce.
func executeBounded(ctx context.Context, handler api.Handler, params map[string]interface{}, timeout time.Duration) outcome {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	type completion struct {
		value interface{}
		err   error
	}
	// Buffered so the abandoned goroutine can always finish its send.
	done := make(chan completion, 1)

	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					done <- completion{err: err}
					return
				}
				done <- completion{err: fmt.Errorf("unknown error")}
			}
		}()
		value, err := handler(ctx, params)
		done <- completion{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case c := <-done:
		return outcome{value: c.value, err: c.err, duration: time.Since(start)}
	case <-timer.C:
		logging.Warn("Executor", "Handler exceeded %s deadline, abandoning invocation", timeout)
		return outcome{timedOut: true, duration: time.Since(start)}
	}
}
