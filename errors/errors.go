package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge lifecycle the error occurred
type Phase string

const (
	PhaseLoad    Phase = "load"    // adapter loading and the load hook
	PhaseResolve Phase = "resolve" // symbol resolution
	PhasePin     Phase = "pin"     // durable reference pinning
	PhaseEnv     Phase = "env"     // host runtime context use
)

// Kind categorizes the error
type Kind string

const (
	KindMissingNamespace  Kind = "missing_namespace"
	KindMissingExport     Kind = "missing_export"
	KindSignatureMismatch Kind = "signature_mismatch"
	KindInvalidSignature  Kind = "invalid_signature"
	KindInitFailed        Kind = "init_failed"
	KindExpired           Kind = "expired"
	KindClosed            Kind = "closed"
	KindPinned            Kind = "pinned"
	KindInvalidInput      Kind = "invalid_input"
	KindInstantiation     Kind = "instantiation"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Owner  string // export namespace, e.g. "wippy:service/adapter@1.0.0"
	Symbol string // function name within the namespace
	Want   string // expected signature, core-wasm compact form
	Got    string // actual signature found on the export
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Owner != "" {
		b.WriteString(" at ")
		b.WriteString(e.Owner)
		if e.Symbol != "" {
			b.WriteByte('#')
			b.WriteString(e.Symbol)
		}
	}

	if e.Want != "" || e.Got != "" {
		b.WriteString(": want ")
		b.WriteString(e.Want)
		b.WriteString(", got ")
		b.WriteString(e.Got)
	}

	if e.Detail != "" {
		if e.Want != "" || e.Got != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Owner sets the export namespace
func (b *Builder) Owner(ns string) *Builder {
	b.err.Owner = ns
	return b
}

// Symbol sets the function name within the namespace
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Signatures sets the expected and actual signatures
func (b *Builder) Signatures(want, got string) *Builder {
	b.err.Want = want
	b.err.Got = got
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MissingNamespace creates an error for an export namespace absent from the adapter
func MissingNamespace(phase Phase, namespace string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingNamespace,
		Owner:  namespace,
		Detail: "no exports under namespace",
	}
}

// MissingExport creates an error for a function absent from its namespace
func MissingExport(owner, name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindMissingExport,
		Owner:  owner,
		Symbol: name,
		Detail: "export not found",
	}
}

// SignatureMismatch creates an error for an export whose core types differ from the contract
func SignatureMismatch(owner, name, want, got string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindSignatureMismatch,
		Owner:  owner,
		Symbol: name,
		Want:   want,
		Got:    got,
	}
}

// InvalidSignature creates an error for a malformed compact signature string
func InvalidSignature(sig, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindInvalidSignature,
		Detail: fmt.Sprintf("signature %q: %s", sig, detail),
	}
}

// InitFailed wraps a panic value recovered from a failed population run
func InitFailed(value any) *Error {
	err := &Error{
		Phase:  PhaseResolve,
		Kind:   KindInitFailed,
		Detail: "population run panicked",
	}
	if cause, ok := value.(error); ok {
		err.Cause = cause
	} else {
		err.Detail = fmt.Sprintf("population run panicked: %v", value)
	}
	return err
}

// Expired creates an error for use of a host runtime context past its extent
func Expired(op string) *Error {
	return &Error{
		Phase:  PhaseEnv,
		Kind:   KindExpired,
		Detail: fmt.Sprintf("%s on expired context", op),
	}
}

// Closed creates an error for operations on a closed engine or adapter
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseEnv,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// Pinned creates an error for closing an adapter with durable references outstanding
func Pinned(namespace string, count int) *Error {
	return &Error{
		Phase:  PhasePin,
		Kind:   KindPinned,
		Owner:  namespace,
		Detail: fmt.Sprintf("%d durable reference(s) outstanding", count),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an adapter instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate adapter module",
		Cause:  cause,
	}
}

// Load creates an adapter loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingSymbol represents a single contract symbol an adapter fails to satisfy
type MissingSymbol struct {
	Namespace string // e.g., "wippy:service/adapter@1.0.0"
	Function  string // e.g., "deploy-artifact"
}

// MissingSymbolsError aggregates every contract symbol an adapter binary does
// not provide. The symbol cache itself fails fast on the first skewed symbol;
// this type serves full-sweep contract checks.
type MissingSymbolsError struct {
	Symbols []MissingSymbol
}

// NewMissingSymbolsError creates an error from a list of "namespace#function" keys
func NewMissingSymbolsError(keys []string) *MissingSymbolsError {
	result := &MissingSymbolsError{
		Symbols: make([]MissingSymbol, 0, len(keys)),
	}
	for _, key := range keys {
		ns, fn := parseSymbolKey(key)
		result.Symbols = append(result.Symbols, MissingSymbol{
			Namespace: ns,
			Function:  fn,
		})
	}
	return result
}

func parseSymbolKey(key string) (namespace, function string) {
	ns, fn, found := strings.Cut(key, "#")
	if found {
		return ns, fn
	}
	return key, ""
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[resolve] missing_export: no symbols specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("adapter does not satisfy %d contract symbol(s):\n", len(e.Symbols)))

	// Group by namespace for cleaner output
	byNS := make(map[string][]string)
	var nsOrder []string
	for _, sym := range e.Symbols {
		if _, exists := byNS[sym.Namespace]; !exists {
			nsOrder = append(nsOrder, sym.Namespace)
		}
		byNS[sym.Namespace] = append(byNS[sym.Namespace], sym.Function)
	}

	for _, ns := range nsOrder {
		b.WriteString("\n  ")
		b.WriteString(ns)
		b.WriteString(":\n")
		for _, fn := range byNS[ns] {
			b.WriteString("    - ")
			b.WriteString(fn)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *MissingSymbolsError) Is(target error) bool {
	_, ok := target.(*MissingSymbolsError)
	return ok
}
