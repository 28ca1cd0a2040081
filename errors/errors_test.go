package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindSignatureMismatch,
				Owner:  "wippy:service/adapter@1.0.0",
				Symbol: "shutdown",
				Want:   "()v",
				Got:    "(i)v",
			},
			contains: []string{"[resolve]", "signature_mismatch", "wippy:service/adapter@1.0.0#shutdown", "want ()v", "got (i)v"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEnv,
				Kind:  KindExpired,
			},
			contains: []string{"[env]", "expired"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInstantiation,
				Detail: "instantiate adapter module",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "instantiation", "instantiate adapter module", "caused by", "underlying error"},
		},
		{
			name: "namespace without symbol",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindMissingNamespace,
				Owner:  "wippy:fault/error@1.0.0",
				Detail: "no exports under namespace",
			},
			contains: []string{"[resolve]", "missing_namespace", "wippy:fault/error@1.0.0", "no exports under namespace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseResolve,
		Kind:   KindMissingExport,
		Symbol: "shutdown",
	}

	if !err.Is(&Error{Phase: PhaseResolve, Kind: KindMissingExport}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhasePin, Kind: KindMissingExport}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseResolve, Kind: KindMissingNamespace}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseResolve, Kind: KindMissingExport}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseResolve, KindSignatureMismatch).
		Owner("wippy:service/adapter@1.0.0").
		Symbol("initialize").
		Signatures("(j)v", "(i)v").
		Cause(cause).
		Detail("found %d param(s), expected %d", 1, 1).
		Build()

	if err.Phase != PhaseResolve {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
	}
	if err.Kind != KindSignatureMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindSignatureMismatch)
	}
	if err.Owner != "wippy:service/adapter@1.0.0" {
		t.Errorf("Owner = %v, want adapter namespace", err.Owner)
	}
	if err.Symbol != "initialize" {
		t.Errorf("Symbol = %v, want 'initialize'", err.Symbol)
	}
	if err.Want != "(j)v" || err.Got != "(i)v" {
		t.Errorf("Want=%v Got=%v", err.Want, err.Got)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "found 1 param(s), expected 1" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("MissingNamespace", func(t *testing.T) {
		err := MissingNamespace(PhaseResolve, "wippy:fault/error@1.0.0")
		if err.Kind != KindMissingNamespace {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMissingNamespace)
		}
		if err.Owner != "wippy:fault/error@1.0.0" {
			t.Errorf("Owner = %v", err.Owner)
		}
	})

	t.Run("MissingExport", func(t *testing.T) {
		err := MissingExport("wippy:service/adapter@1.0.0", "shutdown")
		if err.Kind != KindMissingExport {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMissingExport)
		}
		if err.Phase != PhaseResolve {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseResolve)
		}
	})

	t.Run("SignatureMismatch", func(t *testing.T) {
		err := SignatureMismatch("ns", "fn", "()v", "(i)v")
		if err.Kind != KindSignatureMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSignatureMismatch)
		}
		if err.Want != "()v" || err.Got != "(i)v" {
			t.Errorf("Want=%v Got=%v", err.Want, err.Got)
		}
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		err := InvalidSignature("(x)v", "unknown value type 'x'")
		if err.Kind != KindInvalidSignature {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidSignature)
		}
		if !strings.Contains(err.Detail, "(x)v") {
			t.Errorf("Detail = %v, should contain the signature", err.Detail)
		}
	})

	t.Run("InitFailed", func(t *testing.T) {
		cause := errors.New("env gave up")
		err := InitFailed(cause)
		if err.Kind != KindInitFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInitFailed)
		}
		if !errors.Is(err, cause) {
			t.Error("error cause should be wrapped")
		}

		plain := InitFailed("lookup table on fire")
		if !strings.Contains(plain.Detail, "lookup table on fire") {
			t.Errorf("Detail = %v, should carry the panic value", plain.Detail)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		err := Expired("lookup")
		if err.Kind != KindExpired {
			t.Errorf("Kind = %v, want %v", err.Kind, KindExpired)
		}
		if err.Phase != PhaseEnv {
			t.Errorf("Phase = %v, want %v", err.Phase, PhaseEnv)
		}
	})

	t.Run("Pinned", func(t *testing.T) {
		err := Pinned("wippy:fault/error@1.0.0", 3)
		if err.Kind != KindPinned {
			t.Errorf("Kind = %v, want %v", err.Kind, KindPinned)
		}
		if !strings.Contains(err.Detail, "3") {
			t.Errorf("Detail = %v, should contain count", err.Detail)
		}
	})

	t.Run("Instantiation", func(t *testing.T) {
		cause := errors.New("boom")
		err := Instantiation(cause)
		if err.Kind != KindInstantiation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInstantiation)
		}
		if !errors.Is(err, cause) {
			t.Error("cause should be wrapped")
		}
	})
}

func TestMissingSymbolsError(t *testing.T) {
	t.Run("single symbol", func(t *testing.T) {
		err := NewMissingSymbolsError([]string{"wippy:service/adapter@1.0.0#shutdown"})
		if len(err.Symbols) != 1 {
			t.Errorf("expected 1 symbol, got %d", len(err.Symbols))
		}
		if err.Symbols[0].Namespace != "wippy:service/adapter@1.0.0" {
			t.Errorf("namespace = %q", err.Symbols[0].Namespace)
		}
		if err.Symbols[0].Function != "shutdown" {
			t.Errorf("function = %q, want shutdown", err.Symbols[0].Function)
		}
	})

	t.Run("grouped by namespace", func(t *testing.T) {
		err := NewMissingSymbolsError([]string{
			"wippy:service/adapter@1.0.0#initialize",
			"wippy:service/fault@1.0.0#get-message",
			"wippy:service/adapter@1.0.0#shutdown",
		})
		msg := err.Error()
		if !strings.Contains(msg, "3 contract symbol(s)") {
			t.Errorf("error should contain count, got: %s", msg)
		}
		if !strings.Contains(msg, "wippy:service/adapter@1.0.0:") {
			t.Errorf("error should group by namespace")
		}
		if !strings.Contains(msg, "wippy:service/fault@1.0.0:") {
			t.Errorf("error should contain second namespace")
		}
	})

	t.Run("namespace-only key", func(t *testing.T) {
		err := NewMissingSymbolsError([]string{"wippy:fault/error@1.0.0"})
		if err.Symbols[0].Namespace != "wippy:fault/error@1.0.0" {
			t.Errorf("namespace = %q", err.Symbols[0].Namespace)
		}
		if err.Symbols[0].Function != "" {
			t.Errorf("function = %q, want empty", err.Symbols[0].Function)
		}
	})

	t.Run("empty symbols", func(t *testing.T) {
		err := NewMissingSymbolsError(nil)
		if !strings.Contains(err.Error(), "no symbols specified") {
			t.Errorf("empty error should have specific message, got: %s", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := NewMissingSymbolsError([]string{"ns#fn"})
		if !errors.Is(err, &MissingSymbolsError{}) {
			t.Error("errors.Is should match MissingSymbolsError")
		}
	})
}
