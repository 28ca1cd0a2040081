package contract

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/guest-bridge/guest"
)

// FlattenTypes flattens a type list to core value types.
func FlattenTypes(types []wit.Type) []guest.ValType {
	var out []guest.ValType
	for _, t := range types {
		out = append(out, FlattenType(t)...)
	}
	return out
}

// FlattenType maps a component-model type to the core value types it
// occupies on the call stack.
func FlattenType(t wit.Type) []guest.ValType {
	if t == nil {
		return nil
	}

	switch v := t.(type) {
	case wit.Bool, wit.U8, wit.U16, wit.U32, wit.S8, wit.S16, wit.S32, wit.Char:
		return []guest.ValType{guest.I32}
	case wit.U64, wit.S64:
		return []guest.ValType{guest.I64}
	case wit.F32:
		return []guest.ValType{guest.F32}
	case wit.F64:
		return []guest.ValType{guest.F64}
	case wit.String:
		return []guest.ValType{guest.I32, guest.I32} // ptr, len
	case *wit.TypeDef:
		return flattenTypeDef(v)
	default:
		return []guest.ValType{guest.I32}
	}
}

func flattenTypeDef(td *wit.TypeDef) []guest.ValType {
	if td == nil || td.Kind == nil {
		return []guest.ValType{guest.I32}
	}

	switch kind := td.Kind.(type) {
	case *wit.List:
		return []guest.ValType{guest.I32, guest.I32} // ptr, len
	case *wit.Record:
		var flat []guest.ValType
		for _, field := range kind.Fields {
			flat = append(flat, FlattenType(field.Type)...)
		}
		return flat
	case *wit.Tuple:
		var flat []guest.ValType
		for _, elem := range kind.Types {
			flat = append(flat, FlattenType(elem)...)
		}
		return flat
	case *wit.Enum:
		return []guest.ValType{guest.I32} // discriminant only
	case *wit.Option:
		discrim := []guest.ValType{guest.I32}
		if kind.Type != nil {
			return append(discrim, FlattenType(kind.Type)...)
		}
		return discrim
	case *wit.Result:
		discrim := []guest.ValType{guest.I32}
		var payload []guest.ValType
		if kind.OK != nil {
			payload = FlattenType(kind.OK)
		}
		if kind.Err != nil {
			for i, ft := range FlattenType(kind.Err) {
				if i < len(payload) {
					payload[i] = joinTypes(payload[i], ft)
				} else {
					payload = append(payload, ft)
				}
			}
		}
		return append(discrim, payload...)
	case *wit.Flags:
		if len(kind.Flags) > 32 {
			return []guest.ValType{guest.I64}
		}
		return []guest.ValType{guest.I32}
	case *wit.Own, *wit.Borrow:
		return []guest.ValType{guest.I32} // resource handle
	case wit.String:
		return []guest.ValType{guest.I32, guest.I32}
	case wit.Bool, wit.U8, wit.U16, wit.U32, wit.S8, wit.S16, wit.S32, wit.Char:
		return []guest.ValType{guest.I32}
	case wit.U64, wit.S64:
		return []guest.ValType{guest.I64}
	case wit.F32:
		return []guest.ValType{guest.F32}
	case wit.F64:
		return []guest.ValType{guest.F64}
	default:
		return []guest.ValType{guest.I32}
	}
}

// joinTypes unions two core types for variant payload slots.
func joinTypes(a, b guest.ValType) guest.ValType {
	if a == b {
		return a
	}
	// 32-bit types can share storage
	if (a == guest.I32 && b == guest.F32) || (a == guest.F32 && b == guest.I32) {
		return guest.I32
	}
	return guest.I64
}
