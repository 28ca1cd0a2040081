package guest

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/guest-bridge/errors"
)

func TestSignature_Parse(t *testing.T) {
	tests := []struct {
		sig     Signature
		params  []ValType
		results []ValType
	}{
		{"()v", nil, nil},
		{"(j)v", []ValType{I64}, nil},
		{"(jii)v", []ValType{I64, I32, I32}, nil},
		{"(ii)i", []ValType{I32, I32}, []ValType{I32}},
		{"(i)ii", []ValType{I32}, []ValType{I32, I32}},
		{"(fd)d", []ValType{F32, F64}, []ValType{F64}},
		{"(iiiiiijiiiii)v", []ValType{I32, I32, I32, I32, I32, I32, I64, I32, I32, I32, I32, I32}, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.sig), func(t *testing.T) {
			params, results, err := tt.sig.Parse()
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.sig, err)
			}
			if !valTypesEqual(params, tt.params) {
				t.Errorf("params = %v, want %v", params, tt.params)
			}
			if !valTypesEqual(results, tt.results) {
				t.Errorf("results = %v, want %v", results, tt.results)
			}
		})
	}
}

func TestSignature_ParseInvalid(t *testing.T) {
	tests := []Signature{
		"",
		"v",
		"(",
		"()",
		"()x",
		"(x)v",
		"(i)iv",
		"()vv",
		"i)v",
		"shutdown",
	}

	for _, sig := range tests {
		t.Run(string(sig), func(t *testing.T) {
			_, _, err := sig.Parse()
			if err == nil {
				t.Fatalf("Parse(%q) should fail", sig)
			}
			var bridgeErr *errors.Error
			if !stderrors.As(err, &bridgeErr) {
				t.Fatalf("error type = %T, want *errors.Error", err)
			}
			if bridgeErr.Kind != errors.KindInvalidSignature {
				t.Errorf("Kind = %v, want %v", bridgeErr.Kind, errors.KindInvalidSignature)
			}
			if sig.Valid() {
				t.Errorf("Valid(%q) = true, want false", sig)
			}
		})
	}
}

func TestMakeSignature_Roundtrip(t *testing.T) {
	sigs := []Signature{"()v", "(j)v", "(ii)i", "(i)ii", "(iiiiiijiiiii)v", "(fd)d"}

	for _, sig := range sigs {
		params, results, err := sig.Parse()
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", sig, err)
		}
		if got := MakeSignature(params, results); got != sig {
			t.Errorf("MakeSignature roundtrip = %q, want %q", got, sig)
		}
	}
}

func TestValType_String(t *testing.T) {
	tests := []struct {
		v    ValType
		want string
	}{
		{I32, "i32"},
		{I64, "i64"},
		{F32, "f32"},
		{F64, "f64"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%c.String() = %q, want %q", byte(tt.v), got, tt.want)
		}
	}
}

func valTypesEqual(a, b []ValType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
