package symbols

import (
	"go.uber.org/zap"

	"github.com/wippyai/guest-bridge/errors"
	"github.com/wippyai/guest-bridge/guest"
)

// table holds every resolved reference of the contract. Slots are written
// only by the winning population run and become readable only once the gate
// is done.
type table struct {
	initialize              guest.FuncHandle
	deployArtifact          guest.FuncHandle
	isArtifactDeployed      guest.FuncHandle
	initiateAddingService   guest.FuncHandle
	initiateResumingService guest.FuncHandle
	updateServiceStatus     guest.FuncHandle
	executeTransaction      guest.FuncHandle
	beforeTransactions      guest.FuncHandle
	afterTransactions       guest.FuncHandle
	afterCommit             guest.FuncHandle
	shutdown                guest.FuncHandle

	valueGetKind    guest.FuncHandle
	kindGetName     guest.FuncHandle
	faultGetMessage guest.FuncHandle
	faultGetCause   guest.FuncHandle
	faultErrorCode  guest.FuncHandle

	errorRef           guest.InstanceRef
	runtimeErrorRef    guest.InstanceRef
	argumentErrorRef   guest.InstanceRef
	executionFaultRef  guest.InstanceRef
	unexpectedFaultRef guest.InstanceRef
}

// Cache is a symbol table with exactly-once population semantics. The zero
// value is ready to use. Production code works with the process-wide cache
// through the package-level functions; constructing a Cache directly is
// intended for tests.
type Cache struct {
	gate initGate
	t    table
}

// EnsureInitialized resolves the full contract through env. The first caller
// performs the resolution; concurrent callers block until it completes and
// then see the populated table. Later calls return immediately.
//
// Resolution is all-or-nothing. The first symbol the adapter does not
// satisfy panics with the offending owner, name and signature, the gate
// becomes failed, and every later call re-panics with the same value. A
// failed cache cannot be repaired in-process; the embedder must restart
// with a matching adapter binary.
func (c *Cache) EnsureInitialized(env guest.Env) {
	c.gate.begin(func() {
		c.populate(env)
	})
}

// Initialized reports whether population has completed. It returns false
// while a population run is still in flight.
func (c *Cache) Initialized() bool {
	return c.gate.done()
}

func (c *Cache) populate(env guest.Env) {
	if env == nil {
		panic(errors.InvalidInput(errors.PhaseResolve, "nil host runtime context"))
	}

	c.t.initialize = mustFunc(env, descInitialize)
	c.t.deployArtifact = mustFunc(env, descDeployArtifact)
	c.t.isArtifactDeployed = mustFunc(env, descIsArtifactDeployed)
	c.t.initiateAddingService = mustFunc(env, descInitiateAddingService)
	c.t.initiateResumingService = mustFunc(env, descInitiateResumingService)
	c.t.updateServiceStatus = mustFunc(env, descUpdateServiceStatus)
	c.t.executeTransaction = mustFunc(env, descExecuteTransaction)
	c.t.beforeTransactions = mustFunc(env, descBeforeTransactions)
	c.t.afterTransactions = mustFunc(env, descAfterTransactions)
	c.t.afterCommit = mustFunc(env, descAfterCommit)
	c.t.shutdown = mustFunc(env, descShutdown)

	c.t.valueGetKind = mustFunc(env, descValueGetKind)
	c.t.kindGetName = mustFunc(env, descKindGetName)
	c.t.faultGetMessage = mustFunc(env, descFaultGetMessage)
	c.t.faultGetCause = mustFunc(env, descFaultGetCause)
	c.t.faultErrorCode = mustFunc(env, descFaultErrorCode)

	c.t.errorRef = mustPin(env, ErrorNamespace)
	c.t.runtimeErrorRef = mustPin(env, RuntimeErrorNamespace)
	c.t.argumentErrorRef = mustPin(env, ArgumentErrorNamespace)
	c.t.executionFaultRef = mustPin(env, ExecutionFaultNamespace)
	c.t.unexpectedFaultRef = mustPin(env, UnexpectedFaultNamespace)

	Logger().Debug("cached adapter symbol references",
		zap.Int("methods", len(methodOrder)),
		zap.Int("instances", len(instanceOrder)))
}

// mustFunc resolves one method descriptor or panics with the failing symbol.
func mustFunc(env guest.Env, d MethodDescriptor) guest.FuncHandle {
	h, err := env.LookupFunc(d.Owner, d.Name, d.Signature)
	if err != nil {
		panic(err)
	}
	return h
}

// mustPin locates one namespace and pins it, or panics.
func mustPin(env guest.Env, namespace string) guest.InstanceRef {
	inst, err := env.FindInstance(namespace)
	if err != nil {
		panic(err)
	}
	ref, err := env.Pin(inst)
	if err != nil {
		panic(err)
	}
	return ref
}

const notInitializedPanic = "adapter symbol cache is not initialized"

// checkReady guards every accessor. Touching the cache before the load hook
// completes is a bug in the embedding application, so this panics rather
// than returning an error.
func (c *Cache) checkReady() {
	if !c.gate.done() {
		panic(notInitializedPanic)
	}
}

// defaultCache is the process-wide table the load hook populates.
var defaultCache Cache

// EnsureInitialized populates the process-wide cache. See
// Cache.EnsureInitialized for the concurrency and failure contract.
func EnsureInitialized(env guest.Env) {
	defaultCache.EnsureInitialized(env)
}

// Initialized reports whether the process-wide cache is populated.
func Initialized() bool {
	return defaultCache.Initialized()
}
