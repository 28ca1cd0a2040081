package symbols

import "github.com/wippyai/guest-bridge/guest"

// Accessors for the introspection functions the fault translator walks:
// value kinds, kind names, fault messages and causes, execution error codes.

func (c *Cache) ValueGetKind() guest.FuncHandle {
	c.checkReady()
	return c.t.valueGetKind
}

func (c *Cache) KindGetName() guest.FuncHandle {
	c.checkReady()
	return c.t.kindGetName
}

func (c *Cache) FaultGetMessage() guest.FuncHandle {
	c.checkReady()
	return c.t.faultGetMessage
}

func (c *Cache) FaultGetCause() guest.FuncHandle {
	c.checkReady()
	return c.t.faultGetCause
}

func (c *Cache) ExecutionFaultErrorCode() guest.FuncHandle {
	c.checkReady()
	return c.t.faultErrorCode
}

// Process-wide variants.

func ValueGetKind() guest.FuncHandle    { return defaultCache.ValueGetKind() }
func KindGetName() guest.FuncHandle     { return defaultCache.KindGetName() }
func FaultGetMessage() guest.FuncHandle { return defaultCache.FaultGetMessage() }
func FaultGetCause() guest.FuncHandle   { return defaultCache.FaultGetCause() }
func ExecutionFaultErrorCode() guest.FuncHandle {
	return defaultCache.ExecutionFaultErrorCode()
}
