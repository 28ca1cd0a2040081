package guest

import (
	"fmt"
	"strings"

	"github.com/wippyai/guest-bridge/errors"
)

// ValType identifies a core value type inside a compact signature.
type ValType byte

const (
	I32 ValType = 'i'
	I64 ValType = 'j'
	F32 ValType = 'f'
	F64 ValType = 'd'
)

func (v ValType) valid() bool {
	switch v {
	case I32, I64, F32, F64:
		return true
	}
	return false
}

// String returns the core wasm spelling of the value type.
func (v ValType) String() string {
	switch v {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}
	return fmt.Sprintf("valtype(0x%02x)", byte(v))
}

// Signature is the compact core-wasm spelling of a function type: parameter
// letters between parentheses, result letters after. Value letters are
// i (i32), j (i64), f (f32), d (f64); the result v marks no results.
//
//	()v      no params, no results
//	(jii)v   params i64, i32, i32
//	(ii)i    params i32, i32 and an i32 result
//	(i)ii    one i32 param and two i32 results
type Signature string

// Parse splits the signature into parameter and result value types.
func (s Signature) Parse() (params, results []ValType, err error) {
	str := string(s)
	if len(str) < 3 || str[0] != '(' {
		return nil, nil, errors.InvalidSignature(str, "must start with '(' and name a result")
	}
	close := strings.IndexByte(str, ')')
	if close < 0 {
		return nil, nil, errors.InvalidSignature(str, "missing ')'")
	}
	for i := 1; i < close; i++ {
		v := ValType(str[i])
		if !v.valid() {
			return nil, nil, errors.InvalidSignature(str, fmt.Sprintf("unknown param type %q", str[i]))
		}
		params = append(params, v)
	}
	res := str[close+1:]
	if res == "" {
		return nil, nil, errors.InvalidSignature(str, "missing result")
	}
	if res == "v" {
		return params, nil, nil
	}
	for i := 0; i < len(res); i++ {
		v := ValType(res[i])
		if !v.valid() {
			return nil, nil, errors.InvalidSignature(str, fmt.Sprintf("unknown result type %q", res[i]))
		}
		results = append(results, v)
	}
	return params, results, nil
}

// Valid reports whether the signature parses.
func (s Signature) Valid() bool {
	_, _, err := s.Parse()
	return err == nil
}

// MakeSignature renders parameter and result types in compact form. An empty
// result list renders as v.
func MakeSignature(params, results []ValType) Signature {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteByte(byte(p))
	}
	b.WriteByte(')')
	if len(results) == 0 {
		b.WriteByte('v')
	} else {
		for _, r := range results {
			b.WriteByte(byte(r))
		}
	}
	return Signature(b.String())
}
