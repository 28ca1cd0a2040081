package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/guest-bridge/errors"
	"github.com/wippyai/guest-bridge/guest"
)

// Adapter is a loaded service adapter module. It implements guest.Conn:
// the load hook obtains its resolution context from here.
type Adapter struct {
	engine     *Engine
	module     api.Module
	namespaces map[string]struct{}
	mu         sync.Mutex
	closed     bool
}

// Env returns the host runtime context for bridge entry points. The context
// stays valid while the adapter remains loaded; operations on it fail with
// an expired error afterwards.
func (a *Adapter) Env() (guest.Env, error) {
	if a.isClosed() {
		return nil, errors.Closed("adapter")
	}
	return &runtimeEnv{adapter: a}, nil
}

// Module exposes the underlying wazero module for dispatch layers.
func (a *Adapter) Module() api.Module {
	return a.module
}

func (a *Adapter) hasNamespace(ns string) bool {
	_, ok := a.namespaces[ns]
	return ok
}

func (a *Adapter) isClosed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed || a.engine.isClosed()
}

// Close unloads the adapter. It refuses while durable references pinned
// through this adapter are outstanding; those die only with the engine.
func (a *Adapter) Close(ctx context.Context) error {
	if count, ns := a.engine.pins.countFor(a); count > 0 {
		return errors.Pinned(ns, count)
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	return a.module.Close(ctx)
}

// runtimeEnv is the wazero-backed guest.Env.
type runtimeEnv struct {
	adapter *Adapter
}

func (e *runtimeEnv) LookupFunc(owner, name string, sig guest.Signature) (guest.FuncHandle, error) {
	if e.adapter.isClosed() {
		return nil, errors.Expired("lookup")
	}

	wantParams, wantResults, err := sig.Parse()
	if err != nil {
		return nil, err
	}

	key := owner + "#" + name
	fn := e.adapter.module.ExportedFunction(key)
	if fn == nil {
		if !e.adapter.hasNamespace(owner) {
			return nil, errors.MissingNamespace(errors.PhaseResolve, owner)
		}
		return nil, errors.MissingExport(owner, name)
	}

	def := fn.Definition()
	if !typesMatch(wantParams, def.ParamTypes()) || !typesMatch(wantResults, def.ResultTypes()) {
		got := coreSignature(def.ParamTypes(), def.ResultTypes())
		return nil, errors.SignatureMismatch(owner, name, string(sig), string(got))
	}

	return &funcHandle{owner: owner, name: name, sig: sig, fn: fn}, nil
}

func (e *runtimeEnv) FindInstance(namespace string) (guest.Instance, error) {
	if e.adapter.isClosed() {
		return nil, errors.Expired("find instance")
	}
	if !e.adapter.hasNamespace(namespace) {
		return nil, errors.MissingNamespace(errors.PhaseResolve, namespace)
	}
	return &instanceView{env: e, namespace: namespace}, nil
}

func (e *runtimeEnv) Pin(inst guest.Instance) (guest.InstanceRef, error) {
	if e.adapter.isClosed() {
		return nil, errors.Expired("pin")
	}

	view, ok := inst.(*instanceView)
	if !ok {
		return nil, errors.InvalidInput(errors.PhasePin, "foreign instance view")
	}
	if view.env.adapter != e.adapter {
		return nil, errors.InvalidInput(errors.PhasePin, "instance view from another adapter")
	}

	token := e.adapter.engine.pins.add(e.adapter, view.namespace)
	Logger().Debug("pinned namespace",
		zap.String("namespace", view.namespace),
		zap.Uint64("token", token))
	return &pinnedRef{namespace: view.namespace, token: token}, nil
}

// funcHandle wraps a resolved wazero function. The function value is
// retained so dispatch never repeats the name lookup.
type funcHandle struct {
	owner string
	name  string
	sig   guest.Signature
	fn    api.Function
}

func (h *funcHandle) Owner() string              { return h.owner }
func (h *funcHandle) Name() string               { return h.name }
func (h *funcHandle) Signature() guest.Signature { return h.sig }

// Raw returns the underlying wazero function for dispatch layers.
func (h *funcHandle) Raw() api.Function { return h.fn }

// instanceView is a namespace view scoped to the adapter that produced it.
type instanceView struct {
	env       *runtimeEnv
	namespace string
}

func (v *instanceView) Namespace() string { return v.namespace }

// pinnedRef is a durable namespace reference backed by the engine pin table.
type pinnedRef struct {
	namespace string
	token     uint64
}

func (r *pinnedRef) Namespace() string { return r.namespace }
func (r *pinnedRef) Handle() uint64    { return r.token }

func coreType(v guest.ValType) api.ValueType {
	switch v {
	case guest.I32:
		return api.ValueTypeI32
	case guest.I64:
		return api.ValueTypeI64
	case guest.F32:
		return api.ValueTypeF32
	case guest.F64:
		return api.ValueTypeF64
	}
	return 0
}

func typesMatch(want []guest.ValType, got []api.ValueType) bool {
	if len(want) != len(got) {
		return false
	}
	for i, w := range want {
		if coreType(w) != got[i] {
			return false
		}
	}
	return true
}

// coreSignature renders wazero types in compact form for error messages.
func coreSignature(params, results []api.ValueType) guest.Signature {
	conv := func(ts []api.ValueType) []guest.ValType {
		out := make([]guest.ValType, 0, len(ts))
		for _, t := range ts {
			switch t {
			case api.ValueTypeI32:
				out = append(out, guest.I32)
			case api.ValueTypeI64:
				out = append(out, guest.I64)
			case api.ValueTypeF32:
				out = append(out, guest.F32)
			case api.ValueTypeF64:
				out = append(out, guest.F64)
			}
		}
		return out
	}
	return guest.MakeSignature(conv(params), conv(results))
}
