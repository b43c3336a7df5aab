package strategy

import (
	"sync"

	"github.com/google/uuid"
)

// tokenArena is the in-memory table of parked executions, keyed by resume
// token. Tokens are opaque and single-use: take removes the entry on a hit,
// so a second resume with the same token always misses.
//
// There is deliberately no expiry or eviction here: a strategy paused and
// never resumed keeps its state for the process lifetime. A production
// deployment wanting bounded memory should add a TTL sweep.
type tokenArena struct {
	mu     sync.Mutex
	parked map[string]*executionState
}

func newTokenArena() *tokenArena {
	return &tokenArena{parked: make(map[string]*executionState)}
}

// park stores the execution state under a freshly minted token.
func (a *tokenArena) park(state *executionState) string {
	token := uuid.NewString()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.parked[token] = state
	return token
}

// take looks a token up and consumes it.
func (a *tokenArena) take(token string) (*executionState, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	state, ok := a.parked[token]
	if ok {
		delete(a.parked, token)
	}
	return state, ok
}

// size reports the number of currently parked executions.
func (a *tokenArena) size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.parked)
}
