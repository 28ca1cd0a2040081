// Package guest defines the object model the bridge uses to talk to the
// adapter component hosted by the runtime.
//
// The adapter's exports are addressed as "namespace#function" keys, e.g.
// "wippy:service/adapter@1.0.0#shutdown". Function types are written in a
// compact core-wasm form (Signature). Three reference types cover the
// lifetimes the bridge needs:
//
//	FuncHandle  - resolved function, valid while the adapter is loaded
//	Instance    - namespace view scoped to the context that produced it
//	InstanceRef - durable pinned namespace, valid until engine shutdown
//
// Env is the per-context resolution surface; Conn is the durable connection
// a load hook receives. The engine package provides the wazero-backed
// implementations.
package guest
