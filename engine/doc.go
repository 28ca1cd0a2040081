// Package engine hosts the service adapter inside a wazero runtime.
//
// This package provides the wazero-backed implementations of the guest
// package's interfaces:
//
//	Engine  - creates the runtime, loads adapters, owns the pin table
//	Adapter - a loaded adapter module; implements guest.Conn
//
// Adapter.Env hands out the resolution context the load hook uses. Lookups
// address exports by "namespace#function" key and validate the export's
// core types against the declared compact signature, so a skewed adapter
// binary is rejected symbol by symbol instead of trapping at call time.
//
// # Pin Table
//
// Durable namespace references (guest.InstanceRef) are recorded in the
// engine's pin table. A pinned namespace keeps its adapter loaded:
// Adapter.Close refuses while pins are outstanding. Engine.Close is process
// teardown and force-releases everything.
//
// # Thread Safety
//
// Engine and Adapter are safe for concurrent use. The env values returned
// by Adapter.Env are cheap and may be used from any goroutine while the
// adapter remains loaded.
package engine
