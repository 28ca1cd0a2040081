package symbols

import (
	"sync"
	"sync/atomic"

	"github.com/wippyai/guest-bridge/errors"
)

// Gate states. failed is terminal: a failed population is never retried.
const (
	gateUninitialized uint32 = iota
	gateRunning
	gateDone
	gateFailed
)

// initGate is a queryable once. The atomic state is the synchronization
// point: a reader that observes gateDone also observes every table write
// made before the transition.
type initGate struct {
	mu    sync.Mutex
	state atomic.Uint32
	fault *errors.Error // fault recorded by the failing run
}

// begin runs fn at most once per process. Callers that lose the race block
// until the winner finishes, then return without running fn. After a failed
// run every call panics with the recorded value.
func (g *initGate) begin(fn func()) {
	if g.state.Load() == gateDone {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state.Load() {
	case gateDone:
		return
	case gateFailed:
		panic(g.fault)
	}

	g.state.Store(gateRunning)
	defer func() {
		if r := recover(); r != nil {
			g.fault = asFault(r)
			g.state.Store(gateFailed)
			panic(g.fault)
		}
	}()

	fn()
	g.state.Store(gateDone)
}

// asFault keeps the recorded fault structured whatever the run panicked with.
func asFault(r any) *errors.Error {
	if e, ok := r.(*errors.Error); ok {
		return e
	}
	return errors.InitFailed(r)
}

// done reports whether the guarded run completed successfully.
func (g *initGate) done() bool {
	return g.state.Load() == gateDone
}
