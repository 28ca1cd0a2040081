package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/guest-bridge/errors"
)

// Engine hosts adapter modules inside a wazero runtime. Adapters loaded
// from one engine share the runtime and its pin table.
type Engine struct {
	runtime wazero.Runtime
	pins    *pinTable
	mu      sync.Mutex
	closed  bool
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per adapter in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32
}

// New creates an engine with default configuration.
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()

	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	return &Engine{runtime: runtime, pins: newPinTable()}, nil
}

// LoadAdapter compiles and instantiates an adapter core module. The
// returned Adapter implements guest.Conn and is what the load hook
// receives. Adapters are instantiated anonymously; the engine addresses
// them by reference, not by module name.
func (e *Engine) LoadAdapter(ctx context.Context, wasmBytes []byte) (*Adapter, error) {
	if e.isClosed() {
		return nil, errors.Closed("engine")
	}
	if len(wasmBytes) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty adapter binary")
	}

	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile adapter module", err)
	}

	modConfig := wazero.NewModuleConfig().WithName("")
	instance, err := e.runtime.InstantiateModule(ctx, compiled, modConfig)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	defs := instance.ExportedFunctionDefinitions()
	a := &Adapter{
		engine:     e,
		module:     instance,
		namespaces: exportNamespaces(defs),
	}

	Logger().Debug("adapter loaded",
		zap.Int("exports", len(defs)),
		zap.Int("namespaces", len(a.namespaces)))
	return a, nil
}

// PinnedCount reports the number of live durable references.
func (e *Engine) PinnedCount() int {
	return e.pins.live()
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Close shuts down the runtime and every adapter loaded from it.
// Outstanding pins are force-released: engine shutdown is process teardown,
// the one point where durable references may die.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	if released := e.pins.drain(); released > 0 {
		Logger().Debug("released pins at shutdown", zap.Int("count", released))
	}
	return e.runtime.Close(ctx)
}

// exportNamespaces collects the namespace part of every "ns#fn" export key.
func exportNamespaces(defs map[string]api.FunctionDefinition) map[string]struct{} {
	out := make(map[string]struct{})
	for name := range defs {
		if ns, _, found := strings.Cut(name, "#"); found {
			out[ns] = struct{}{}
		}
	}
	return out
}
