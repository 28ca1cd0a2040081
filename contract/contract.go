package contract

import (
	_ "embed"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/guest-bridge/errors"
	"github.com/wippyai/guest-bridge/guest"
	"github.com/wippyai/guest-bridge/symbols"
)

// Canonical ABI flattening limit for parameters. Functions wider than
// this spill to memory in the component model; the adapter contract
// stays under it so every method passes arguments on the stack.
const MaxFlatParams = 16

//go:embed adapter.wit
var witText string

// WitText returns the contract IDL the typed table mirrors.
func WitText() string {
	return witText
}

// Func describes one contract function in component-model terms.
// Flattening its types yields the compact signature the symbol cache
// resolves against.
type Func struct {
	Namespace string
	Name      string
	Params    []wit.Type
	Results   []wit.Type
}

// Signature flattens the function to its compact core signature.
func (f Func) Signature() guest.Signature {
	return guest.MakeSignature(FlattenTypes(f.Params), FlattenTypes(f.Results))
}

func listU8() wit.Type {
	return &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}
}

// Funcs returns the typed contract table in resolution order.
func Funcs() []Func {
	return []Func{
		{Namespace: symbols.AdapterNamespace, Name: "initialize",
			Params: []wit.Type{wit.U64{}}},
		{Namespace: symbols.AdapterNamespace, Name: "deploy-artifact",
			Params: []wit.Type{listU8(), listU8()}},
		{Namespace: symbols.AdapterNamespace, Name: "is-artifact-deployed",
			Params: []wit.Type{listU8()}, Results: []wit.Type{wit.Bool{}}},
		{Namespace: symbols.AdapterNamespace, Name: "initiate-adding-service",
			Params: []wit.Type{wit.U64{}, listU8(), listU8()}},
		{Namespace: symbols.AdapterNamespace, Name: "initiate-resuming-service",
			Params: []wit.Type{wit.U64{}, listU8(), listU8()}},
		{Namespace: symbols.AdapterNamespace, Name: "update-service-status",
			Params: []wit.Type{listU8(), listU8()}},
		{Namespace: symbols.AdapterNamespace, Name: "execute-transaction",
			Params: []wit.Type{wit.U32{}, wit.String{}, wit.U32{}, listU8(), wit.U64{}, wit.U32{}, listU8(), listU8()}},
		{Namespace: symbols.AdapterNamespace, Name: "before-transactions",
			Params: []wit.Type{wit.U32{}, wit.U64{}}},
		{Namespace: symbols.AdapterNamespace, Name: "after-transactions",
			Params: []wit.Type{wit.U32{}, wit.U64{}}},
		{Namespace: symbols.AdapterNamespace, Name: "after-commit",
			Params: []wit.Type{wit.U64{}, wit.S32{}, wit.U64{}}},
		{Namespace: symbols.AdapterNamespace, Name: "shutdown"},
		{Namespace: symbols.ValueNamespace, Name: "get-kind",
			Params: []wit.Type{wit.U32{}}, Results: []wit.Type{wit.U32{}}},
		{Namespace: symbols.KindNamespace, Name: "get-name",
			Params: []wit.Type{wit.U32{}}, Results: []wit.Type{wit.String{}}},
		{Namespace: symbols.FaultNamespace, Name: "get-message",
			Params: []wit.Type{wit.U32{}}, Results: []wit.Type{wit.String{}}},
		{Namespace: symbols.FaultNamespace, Name: "get-cause",
			Params: []wit.Type{wit.U32{}}, Results: []wit.Type{wit.U32{}}},
		{Namespace: symbols.ExecutionFaultNamespace, Name: "get-error-code",
			Params: []wit.Type{wit.U32{}}, Results: []wit.Type{wit.U32{}}},
	}
}

// Namespaces returns the durable namespaces the load hook pins, in pin order.
func Namespaces() []string {
	out := make([]string, 0, 8)
	for _, d := range symbols.InstanceDescriptors() {
		out = append(out, d.Namespace)
	}
	return out
}

// Verify cross-checks the typed table against the resolved symbol set.
// A mismatch here means the contract sources drifted apart and resolution
// would fail or, worse, bind the wrong core types.
func Verify() error {
	methods := symbols.MethodDescriptors()
	funcs := Funcs()
	if len(funcs) != len(methods) {
		return errors.New(errors.PhaseResolve, errors.KindSignatureMismatch).
			Detail("contract table has %d functions, symbol table has %d", len(funcs), len(methods)).
			Build()
	}

	for i, f := range funcs {
		d := methods[i]
		if f.Namespace != d.Owner || f.Name != d.Name {
			return errors.New(errors.PhaseResolve, errors.KindMissingExport).
				Owner(d.Owner).
				Symbol(d.Name).
				Detail("contract table entry %d is %s#%s", i, f.Namespace, f.Name).
				Build()
		}
		if flat := FlattenTypes(f.Params); len(flat) > MaxFlatParams {
			return errors.New(errors.PhaseResolve, errors.KindInvalidSignature).
				Owner(f.Namespace).
				Symbol(f.Name).
				Detail("%d flat parameters exceed the ABI limit of %d", len(flat), MaxFlatParams).
				Build()
		}
		if got := f.Signature(); got != d.Signature {
			return errors.SignatureMismatch(d.Owner, d.Name, string(d.Signature), string(got))
		}
	}
	return nil
}
