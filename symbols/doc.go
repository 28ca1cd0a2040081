// Package symbols caches resolved references into the service adapter.
//
// The cache is populated exactly once per process, when the load hook runs,
// and is read-only afterwards. Population resolves every function and pins
// every namespace named by the adapter contract, in a fixed order; the first
// symbol the adapter does not satisfy (missing, or exported with different
// core types) aborts population. A failed population is terminal: the
// process must be restarted with a matching adapter binary.
//
// Accessors panic when called before the load hook has completed. A
// premature read is a bug in the embedding application, not a runtime
// condition to handle.
//
//	symbols.EnsureInitialized(env)   // usually via guestbridge.OnLoad
//	h := symbols.AdapterShutdown()   // panics if not initialized
//
// The package-level functions delegate to a process-wide Cache. Tests that
// need isolated lifecycles construct their own Cache values; the zero value
// is ready to use.
package symbols
