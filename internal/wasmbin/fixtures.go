package wasmbin

import (
	"github.com/wippyai/guest-bridge/symbols"
)

// ConformingAdapter declares every export the symbol cache resolves at
// load time: the full method table plus a constructor for each durable
// namespace, so namespace presence checks succeed as well.
func ConformingAdapter() *Module {
	m := New()
	for _, d := range symbols.MethodDescriptors() {
		m.Export(d.Key(), d.Signature)
	}
	for _, d := range symbols.InstanceDescriptors() {
		m.Export(d.Namespace+"#new", "(ii)i")
	}
	return m
}
