package symbols

import "github.com/wippyai/guest-bridge/guest"

// Accessors for the pinned fault-constructor namespaces. The references are
// durable: pinned during population, released only at process exit. Callers
// must not attempt to release them.

func (c *Cache) ErrorRef() guest.InstanceRef {
	c.checkReady()
	return c.t.errorRef
}

func (c *Cache) RuntimeErrorRef() guest.InstanceRef {
	c.checkReady()
	return c.t.runtimeErrorRef
}

func (c *Cache) ArgumentErrorRef() guest.InstanceRef {
	c.checkReady()
	return c.t.argumentErrorRef
}

func (c *Cache) ExecutionFaultRef() guest.InstanceRef {
	c.checkReady()
	return c.t.executionFaultRef
}

func (c *Cache) UnexpectedFaultRef() guest.InstanceRef {
	c.checkReady()
	return c.t.unexpectedFaultRef
}

// Process-wide variants.

func ErrorRef() guest.InstanceRef           { return defaultCache.ErrorRef() }
func RuntimeErrorRef() guest.InstanceRef    { return defaultCache.RuntimeErrorRef() }
func ArgumentErrorRef() guest.InstanceRef   { return defaultCache.ArgumentErrorRef() }
func ExecutionFaultRef() guest.InstanceRef  { return defaultCache.ExecutionFaultRef() }
func UnexpectedFaultRef() guest.InstanceRef { return defaultCache.UnexpectedFaultRef() }
