package engine

import "sync"

// pinTable records durable namespace references. Entries live until the
// engine shuts down; tokens start at 1 so a zero token is never valid.
type pinTable struct {
	mu      sync.Mutex
	entries []pinEntry
}

type pinEntry struct {
	adapter   *Adapter
	namespace string
	released  bool
}

func newPinTable() *pinTable {
	return &pinTable{entries: make([]pinEntry, 0, 16)}
}

// add registers a pin and returns its token.
func (t *pinTable) add(a *Adapter, namespace string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, pinEntry{adapter: a, namespace: namespace})
	return uint64(len(t.entries))
}

// get looks up a live pin by token.
func (t *pinTable) get(token uint64) (pinEntry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if token == 0 || token > uint64(len(t.entries)) {
		return pinEntry{}, false
	}
	e := t.entries[token-1]
	if e.released {
		return pinEntry{}, false
	}
	return e, true
}

// countFor reports how many live pins reference the adapter, and the first
// pinned namespace for error reporting.
func (t *pinTable) countFor(a *Adapter) (int, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	first := ""
	for _, e := range t.entries {
		if e.adapter == a && !e.released {
			if count == 0 {
				first = e.namespace
			}
			count++
		}
	}
	return count, first
}

// live reports the number of unreleased pins across all adapters.
func (t *pinTable) live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	count := 0
	for _, e := range t.entries {
		if !e.released {
			count++
		}
	}
	return count
}

// drain releases every pin and reports how many were live. Only engine
// shutdown calls this.
func (t *pinTable) drain() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	released := 0
	for i := range t.entries {
		if !t.entries[i].released {
			t.entries[i].released = true
			released++
		}
	}
	return released
}
