// Package errors provides structured error types for the guest-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: the owning export namespace, the symbol name,
// expected/actual signatures, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindSignatureMismatch).
//		Owner("wippy:service/adapter@1.0.0").
//		Symbol("shutdown").
//		Signatures("()v", "(i)v").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingExport("wippy:service/adapter@1.0.0", "shutdown")
//	err := errors.SignatureMismatch(owner, name, "()v", "(i)v")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
