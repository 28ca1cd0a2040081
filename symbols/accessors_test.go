package symbols

import (
	"strings"
	"sync"
	"testing"

	"github.com/wippyai/guest-bridge/guest"
)

// methodAccessors enumerates every method accessor for table-driven checks.
func methodAccessors(c *Cache) map[string]func() guest.FuncHandle {
	return map[string]func() guest.FuncHandle{
		"AdapterInitialize":              c.AdapterInitialize,
		"AdapterDeployArtifact":          c.AdapterDeployArtifact,
		"AdapterIsArtifactDeployed":      c.AdapterIsArtifactDeployed,
		"AdapterInitiateAddingService":   c.AdapterInitiateAddingService,
		"AdapterInitiateResumingService": c.AdapterInitiateResumingService,
		"AdapterUpdateServiceStatus":     c.AdapterUpdateServiceStatus,
		"AdapterExecuteTransaction":      c.AdapterExecuteTransaction,
		"AdapterBeforeTransactions":      c.AdapterBeforeTransactions,
		"AdapterAfterTransactions":       c.AdapterAfterTransactions,
		"AdapterAfterCommit":             c.AdapterAfterCommit,
		"AdapterShutdown":                c.AdapterShutdown,
		"ValueGetKind":                   c.ValueGetKind,
		"KindGetName":                    c.KindGetName,
		"FaultGetMessage":                c.FaultGetMessage,
		"FaultGetCause":                  c.FaultGetCause,
		"ExecutionFaultErrorCode":        c.ExecutionFaultErrorCode,
	}
}

// refAccessors enumerates every pinned-reference accessor.
func refAccessors(c *Cache) map[string]func() guest.InstanceRef {
	return map[string]func() guest.InstanceRef{
		"ErrorRef":           c.ErrorRef,
		"RuntimeErrorRef":    c.RuntimeErrorRef,
		"ArgumentErrorRef":   c.ArgumentErrorRef,
		"ExecutionFaultRef":  c.ExecutionFaultRef,
		"UnexpectedFaultRef": c.UnexpectedFaultRef,
	}
}

func TestAccessors_PanicBeforeInit(t *testing.T) {
	var c Cache

	for name, fn := range methodAccessors(&c) {
		fn := fn
		t.Run(name, func(t *testing.T) {
			recovered := mustPanic(t, name, func() { fn() })
			msg, ok := recovered.(string)
			if !ok || !strings.Contains(msg, "not initialized") {
				t.Errorf("panic value = %v, want not-initialized message", recovered)
			}
		})
	}
	for name, fn := range refAccessors(&c) {
		fn := fn
		t.Run(name, func(t *testing.T) {
			mustPanic(t, name, func() { fn() })
		})
	}
}

func TestAccessors_ServeFullTable(t *testing.T) {
	env := newFakeEnv()
	var c Cache
	c.EnsureInitialized(env)

	byKey := make(map[string]MethodDescriptor)
	for _, d := range MethodDescriptors() {
		byKey[d.Key()] = d
	}

	seen := make(map[string]bool)
	for name, fn := range methodAccessors(&c) {
		h := fn()
		if h == nil {
			t.Fatalf("%s returned nil handle", name)
		}
		key := h.Owner() + "#" + h.Name()
		d, ok := byKey[key]
		if !ok {
			t.Errorf("%s returned unknown symbol %s", name, key)
			continue
		}
		if h.Signature() != d.Signature {
			t.Errorf("%s signature = %s, want %s", name, h.Signature(), d.Signature)
		}
		seen[key] = true
	}
	if len(seen) != len(byKey) {
		t.Errorf("accessors cover %d symbols, want %d", len(seen), len(byKey))
	}

	wantNS := make(map[string]bool)
	for _, d := range InstanceDescriptors() {
		wantNS[d.Namespace] = true
	}
	for name, fn := range refAccessors(&c) {
		ref := fn()
		if ref == nil {
			t.Fatalf("%s returned nil ref", name)
		}
		if !wantNS[ref.Namespace()] {
			t.Errorf("%s returned unknown namespace %s", name, ref.Namespace())
		}
		if ref.Handle() == 0 {
			t.Errorf("%s returned zero pin token", name)
		}
	}
}

func TestAccessors_StableAcrossGoroutines(t *testing.T) {
	env := newFakeEnv()
	var c Cache
	c.EnsureInitialized(env)

	baseline := make(map[string]guest.FuncHandle)
	for name, fn := range methodAccessors(&c) {
		baseline[name] = fn()
	}
	baseRefs := make(map[string]guest.InstanceRef)
	for name, fn := range refAccessors(&c) {
		baseRefs[name] = fn()
	}

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name, fn := range methodAccessors(&c) {
				if fn() != baseline[name] {
					t.Errorf("%s returned a different handle", name)
				}
			}
			for name, fn := range refAccessors(&c) {
				if fn() != baseRefs[name] {
					t.Errorf("%s returned a different ref", name)
				}
			}
		}()
	}
	wg.Wait()
}

func TestMethodDescriptors(t *testing.T) {
	descs := MethodDescriptors()
	if len(descs) != 16 {
		t.Fatalf("method count = %d, want 16", len(descs))
	}

	adapterCount := 0
	for _, d := range descs {
		if !d.Signature.Valid() {
			t.Errorf("%s has invalid signature %q", d.Key(), d.Signature)
		}
		if d.Owner == AdapterNamespace {
			adapterCount++
		}
	}
	if adapterCount != 11 {
		t.Errorf("adapter method count = %d, want 11", adapterCount)
	}

	if descs[0].Name != "initialize" {
		t.Errorf("first descriptor = %s, want initialize", descs[0].Name)
	}
	if last := descs[len(descs)-1]; last.Name != "get-error-code" || last.Owner != ExecutionFaultNamespace {
		t.Errorf("last descriptor = %s, want %s#get-error-code", last.Key(), ExecutionFaultNamespace)
	}

	// Returned slices are copies; callers cannot bend the contract.
	descs[0].Name = "mutated"
	if MethodDescriptors()[0].Name != "initialize" {
		t.Error("MethodDescriptors exposes internal state")
	}
}

func TestInstanceDescriptors(t *testing.T) {
	descs := InstanceDescriptors()
	if len(descs) != 5 {
		t.Fatalf("instance count = %d, want 5", len(descs))
	}

	want := []string{
		ErrorNamespace,
		RuntimeErrorNamespace,
		ArgumentErrorNamespace,
		ExecutionFaultNamespace,
		UnexpectedFaultNamespace,
	}
	for i, d := range descs {
		if d.Namespace != want[i] {
			t.Errorf("instance[%d] = %s, want %s", i, d.Namespace, want[i])
		}
	}

	descs[0].Namespace = "mutated"
	if InstanceDescriptors()[0].Namespace != ErrorNamespace {
		t.Error("InstanceDescriptors exposes internal state")
	}
}
