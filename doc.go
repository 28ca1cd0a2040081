// Package guestbridge is the native side of the Wippy service runtime: it
// binds the embedding application to the service adapter component hosted in
// a WebAssembly VM.
//
// When the adapter is loaded, the bridge resolves every function and
// namespace of the versioned adapter contract into a process-wide symbol
// cache, exactly once, and fails fast if the adapter binary does not match
// the contract. Every later bridge call reads the cache without further
// lookups, so a deployment skew between the bridge and the adapter surfaces
// at load time instead of mid-transaction.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	guestbridge/         Root package with the OnLoad hook and protocol versions
//	├── guest/           Object model: Env, Conn, handles, compact signatures
//	├── symbols/         Process-wide symbol cache and accessor facade
//	├── engine/          wazero integration: adapter loading and pin table
//	├── contract/        WIT declarations the cached signatures flatten from
//	├── errors/          Structured error types
//	└── cmd/abicheck/    Contract conformance checker for adapter binaries
//
// # Quick Start
//
// Load an adapter and bring up the bridge:
//
//	eng, err := engine.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	adapter, err := eng.LoadAdapter(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if v := guestbridge.OnLoad(adapter, nil); v == guestbridge.VersionInvalid {
//	    log.Fatal("adapter does not satisfy the bridge contract")
//	}
//
//	shutdown := symbols.AdapterShutdown()
//
// # Failure Model
//
// Resolution failure is deliberate and fatal. OnLoad reports it as
// VersionInvalid; calling a symbols accessor before a successful load
// panics. There is no retry and no partial table: either the whole contract
// resolved, or nothing is served.
package guestbridge
