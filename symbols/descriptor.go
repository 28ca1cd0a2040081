package symbols

import "github.com/wippyai/guest-bridge/guest"

// Export namespaces of the adapter contract. Versions are part of the
// namespace: bumping the contract bumps the namespace string.
const (
	AdapterNamespace         = "wippy:service/adapter@1.0.0"
	ValueNamespace           = "wippy:reflect/value@1.0.0"
	KindNamespace            = "wippy:reflect/kind@1.0.0"
	FaultNamespace           = "wippy:service/fault@1.0.0"
	ExecutionFaultNamespace  = "wippy:service/execution-fault@1.0.0"
	ErrorNamespace           = "wippy:fault/error@1.0.0"
	RuntimeErrorNamespace    = "wippy:fault/runtime-error@1.0.0"
	ArgumentErrorNamespace   = "wippy:fault/argument-error@1.0.0"
	UnexpectedFaultNamespace = "wippy:service/unexpected-fault@1.0.0"
)

// MethodDescriptor names one function of the adapter contract: the export
// namespace that owns it, its name, and its core-wasm signature.
type MethodDescriptor struct {
	Owner     string
	Name      string
	Signature guest.Signature
}

// Key returns the export key, owner + "#" + name.
func (d MethodDescriptor) Key() string {
	return d.Owner + "#" + d.Name
}

// InstanceDescriptor names one export namespace pinned for process lifetime.
type InstanceDescriptor struct {
	Namespace string
}

// The full method set of the contract. Signatures are the canonical-ABI
// flattening of the WIT declarations in the contract package: byte slices
// and strings become (ptr, len) i32 pairs, handles i32, state tokens i64.
var (
	descInitialize              = MethodDescriptor{AdapterNamespace, "initialize", "(j)v"}
	descDeployArtifact          = MethodDescriptor{AdapterNamespace, "deploy-artifact", "(iiii)v"}
	descIsArtifactDeployed      = MethodDescriptor{AdapterNamespace, "is-artifact-deployed", "(ii)i"}
	descInitiateAddingService   = MethodDescriptor{AdapterNamespace, "initiate-adding-service", "(jiiii)v"}
	descInitiateResumingService = MethodDescriptor{AdapterNamespace, "initiate-resuming-service", "(jiiii)v"}
	descUpdateServiceStatus     = MethodDescriptor{AdapterNamespace, "update-service-status", "(iiii)v"}
	descExecuteTransaction      = MethodDescriptor{AdapterNamespace, "execute-transaction", "(iiiiiijiiiii)v"}
	descBeforeTransactions      = MethodDescriptor{AdapterNamespace, "before-transactions", "(ij)v"}
	descAfterTransactions       = MethodDescriptor{AdapterNamespace, "after-transactions", "(ij)v"}
	descAfterCommit             = MethodDescriptor{AdapterNamespace, "after-commit", "(jij)v"}
	descShutdown                = MethodDescriptor{AdapterNamespace, "shutdown", "()v"}

	descValueGetKind    = MethodDescriptor{ValueNamespace, "get-kind", "(i)i"}
	descKindGetName     = MethodDescriptor{KindNamespace, "get-name", "(i)ii"}
	descFaultGetMessage = MethodDescriptor{FaultNamespace, "get-message", "(i)ii"}
	descFaultGetCause   = MethodDescriptor{FaultNamespace, "get-cause", "(i)i"}
	descFaultErrorCode  = MethodDescriptor{ExecutionFaultNamespace, "get-error-code", "(i)i"}
)

// methodOrder fixes the resolution sequence. Population walks this list, so
// a skewed adapter always fails on the same symbol.
var methodOrder = []MethodDescriptor{
	descInitialize,
	descDeployArtifact,
	descIsArtifactDeployed,
	descInitiateAddingService,
	descInitiateResumingService,
	descUpdateServiceStatus,
	descExecuteTransaction,
	descBeforeTransactions,
	descAfterTransactions,
	descAfterCommit,
	descShutdown,
	descValueGetKind,
	descKindGetName,
	descFaultGetMessage,
	descFaultGetCause,
	descFaultErrorCode,
}

// instanceOrder fixes the pin sequence, after all methods resolve.
var instanceOrder = []InstanceDescriptor{
	{ErrorNamespace},
	{RuntimeErrorNamespace},
	{ArgumentErrorNamespace},
	{ExecutionFaultNamespace},
	{UnexpectedFaultNamespace},
}

// MethodDescriptors returns the contract's method set in resolution order.
func MethodDescriptors() []MethodDescriptor {
	out := make([]MethodDescriptor, len(methodOrder))
	copy(out, methodOrder)
	return out
}

// InstanceDescriptors returns the namespaces pinned at load, in pin order.
func InstanceDescriptors() []InstanceDescriptor {
	out := make([]InstanceDescriptor, len(instanceOrder))
	copy(out, instanceOrder)
	return out
}
