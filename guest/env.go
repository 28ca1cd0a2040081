package guest

// FuncHandle is a resolved reference to one exported function of the adapter.
// Handles are cheap, copyable tokens and stay valid for as long as the adapter
// that produced them remains loaded.
type FuncHandle interface {
	Owner() string
	Name() string
	Signature() Signature
}

// Instance is a view over one export namespace of the adapter. Views are
// scoped to the context that produced them and must not outlive it; use
// Env.Pin to obtain a durable reference.
type Instance interface {
	Namespace() string
}

// InstanceRef is a durable, process-lifetime reference to an export
// namespace. Handle reports the pin token assigned by the host runtime.
type InstanceRef interface {
	Namespace() string
	Handle() uint64
}

// Env is the host runtime context handed to bridge entry points. It is valid
// on the goroutine it was obtained on, for the extent of the adapter that
// produced it.
type Env interface {
	// LookupFunc resolves an exported function and checks its core types
	// against sig. The export key is owner + "#" + name.
	LookupFunc(owner, name string, sig Signature) (FuncHandle, error)

	// FindInstance locates an export namespace. The returned view is scoped
	// to this context.
	FindInstance(namespace string) (Instance, error)

	// Pin converts a scoped view into a durable reference the host runtime
	// keeps reachable until the engine shuts down.
	Pin(inst Instance) (InstanceRef, error)
}

// Conn is the durable connection to a loaded adapter. The load hook receives
// a Conn and obtains its Env from it.
type Conn interface {
	Env() (Env, error)
}
