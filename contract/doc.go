// Package contract is the source of truth for the adapter ABI. It keeps
// the component-model view of every function the symbol cache resolves,
// both as embedded WIT text and as a typed table, and flattens those
// types to the compact core signatures resolution checks against.
package contract
