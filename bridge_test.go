package guestbridge

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/wippyai/guest-bridge/guest"
	"github.com/wippyai/guest-bridge/symbols"
)

// stubConn hands out a fixed env, or fails like a dead VM connection.
type stubConn struct {
	env guest.Env
	err error
}

func (c stubConn) Env() (guest.Env, error) { return c.env, c.err }

// stubEnv serves the full contract from the published descriptor tables.
type stubEnv struct {
	mu      sync.Mutex
	lookups int
	exports map[string]guest.Signature
}

func newStubEnv() *stubEnv {
	e := &stubEnv{exports: make(map[string]guest.Signature)}
	for _, d := range symbols.MethodDescriptors() {
		e.exports[d.Key()] = d.Signature
	}
	for _, d := range symbols.InstanceDescriptors() {
		key := d.Namespace + "#new"
		if _, exists := e.exports[key]; !exists {
			e.exports[key] = "(ii)i"
		}
	}
	return e
}

func (e *stubEnv) LookupFunc(owner, name string, sig guest.Signature) (guest.FuncHandle, error) {
	e.mu.Lock()
	e.lookups++
	e.mu.Unlock()

	key := owner + "#" + name
	actual, ok := e.exports[key]
	if !ok {
		return nil, errors.New("export not found: " + key)
	}
	if actual != sig {
		return nil, errors.New("signature mismatch: " + key)
	}
	return stubHandle{owner: owner, name: name, sig: sig}, nil
}

func (e *stubEnv) FindInstance(namespace string) (guest.Instance, error) {
	for key := range e.exports {
		if strings.HasPrefix(key, namespace+"#") {
			return stubInstance{ns: namespace}, nil
		}
	}
	return nil, errors.New("namespace not found: " + namespace)
}

func (e *stubEnv) Pin(inst guest.Instance) (guest.InstanceRef, error) {
	return stubRef{ns: inst.Namespace(), id: 1}, nil
}

type stubHandle struct {
	owner, name string
	sig         guest.Signature
}

func (h stubHandle) Owner() string              { return h.owner }
func (h stubHandle) Name() string               { return h.name }
func (h stubHandle) Signature() guest.Signature { return h.sig }

type stubInstance struct{ ns string }

func (i stubInstance) Namespace() string { return i.ns }

type stubRef struct {
	ns string
	id uint64
}

func (r stubRef) Namespace() string { return r.ns }
func (r stubRef) Handle() uint64    { return r.id }

// TestOnLoad_Lifecycle drives the load hook through its full contract in
// order. The steps share the process-wide cache, so their sequence matters:
// the failing calls must not consume the single initialization attempt.
func TestOnLoad_Lifecycle(t *testing.T) {
	if Loaded() {
		t.Fatal("bridge reports loaded before OnLoad")
	}

	if v := OnLoad(nil, nil); v != VersionInvalid {
		t.Errorf("OnLoad(nil) = %#x, want VersionInvalid", v)
	}
	if Loaded() {
		t.Fatal("nil connection must not mark the bridge loaded")
	}

	dead := stubConn{err: errors.New("vm connection lost")}
	if v := OnLoad(dead, nil); v != VersionInvalid {
		t.Errorf("OnLoad(dead conn) = %#x, want VersionInvalid", v)
	}
	if Loaded() {
		t.Fatal("dead connection must not mark the bridge loaded")
	}

	env := newStubEnv()
	good := stubConn{env: env}
	if v := OnLoad(good, nil); v != ProtocolV1 {
		t.Fatalf("OnLoad = %#x, want ProtocolV1", v)
	}
	if !Loaded() {
		t.Fatal("bridge not loaded after successful OnLoad")
	}

	resolved := env.lookups
	if resolved != len(symbols.MethodDescriptors()) {
		t.Errorf("lookups = %d, want %d", resolved, len(symbols.MethodDescriptors()))
	}

	// A second load is a no-op that reports the same version.
	if v := OnLoad(good, nil); v != ProtocolV1 {
		t.Errorf("second OnLoad = %#x, want ProtocolV1", v)
	}
	if env.lookups != resolved {
		t.Errorf("second OnLoad re-resolved symbols: %d -> %d", resolved, env.lookups)
	}

	// The package-level accessor facade now serves the cached handles.
	if h := symbols.AdapterShutdown(); h.Name() != "shutdown" {
		t.Errorf("AdapterShutdown resolved %q", h.Name())
	}
	if ref := symbols.ErrorRef(); ref.Namespace() != symbols.ErrorNamespace {
		t.Errorf("ErrorRef namespace = %q", ref.Namespace())
	}
}
