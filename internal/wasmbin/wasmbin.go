// Package wasmbin synthesizes minimal core wasm modules for tests and
// tooling. Every declared export becomes a real function whose body
// returns zero values, which is enough to exercise export lookup,
// signature checks, and calls through the engine.
package wasmbin

import (
	"bytes"
	"fmt"

	"github.com/wippyai/guest-bridge/guest"
)

const (
	wasmMagic   uint32 = 0x6d736100 // "\0asm" little-endian
	wasmVersion uint32 = 1

	sectionType     byte = 1
	sectionFunction byte = 3
	sectionExport   byte = 7
	sectionCode     byte = 10

	funcTypeByte byte = 0x60
	exportFunc   byte = 0

	opI32Const byte = 0x41
	opI64Const byte = 0x42
	opF32Const byte = 0x43
	opF64Const byte = 0x44
	opEnd      byte = 0x0b
)

// Module accumulates function exports for a synthetic adapter binary.
type Module struct {
	exports []export
}

type export struct {
	name string
	sig  guest.Signature
}

// New returns an empty module builder.
func New() *Module {
	return &Module{}
}

// Export declares a function export with the given compact signature.
// Declaring a name twice replaces the earlier signature.
func (m *Module) Export(name string, sig guest.Signature) *Module {
	for i := range m.exports {
		if m.exports[i].name == name {
			m.exports[i].sig = sig
			return m
		}
	}
	m.exports = append(m.exports, export{name: name, sig: sig})
	return m
}

// Remove drops a previously declared export. Unknown names are ignored.
func (m *Module) Remove(name string) *Module {
	for i := range m.exports {
		if m.exports[i].name == name {
			m.exports = append(m.exports[:i], m.exports[i+1:]...)
			break
		}
	}
	return m
}

// Build renders the module as a core wasm binary.
func (m *Module) Build() ([]byte, error) {
	type fn struct {
		name    string
		params  []guest.ValType
		results []guest.ValType
	}
	fns := make([]fn, 0, len(m.exports))
	for _, e := range m.exports {
		params, results, err := e.sig.Parse()
		if err != nil {
			return nil, fmt.Errorf("export %q: %w", e.name, err)
		}
		fns = append(fns, fn{name: e.name, params: params, results: results})
	}

	w := newWriter()
	w.WriteU32LE(wasmMagic)
	w.WriteU32LE(wasmVersion)

	// Type section. One entry per function, no deduplication.
	sec := newWriter()
	sec.WriteU32(uint32(len(fns)))
	for _, f := range fns {
		sec.Byte(funcTypeByte)
		writeValTypes(sec, f.params)
		writeValTypes(sec, f.results)
	}
	writeSection(w, sectionType, sec.Bytes())

	// Function section. The i-th function uses the i-th type.
	sec = newWriter()
	sec.WriteU32(uint32(len(fns)))
	for i := range fns {
		sec.WriteU32(uint32(i))
	}
	writeSection(w, sectionFunction, sec.Bytes())

	// Export section.
	sec = newWriter()
	sec.WriteU32(uint32(len(fns)))
	for i, f := range fns {
		sec.WriteName(f.name)
		sec.Byte(exportFunc)
		sec.WriteU32(uint32(i))
	}
	writeSection(w, sectionExport, sec.Bytes())

	// Code section. Zero locals, one zero constant per result.
	sec = newWriter()
	sec.WriteU32(uint32(len(fns)))
	for _, f := range fns {
		body := newWriter()
		body.WriteU32(0)
		for _, r := range f.results {
			writeZeroConst(body, r)
		}
		body.Byte(opEnd)
		sec.WriteU32(uint32(body.Len()))
		sec.WriteBytes(body.Bytes())
	}
	writeSection(w, sectionCode, sec.Bytes())

	return w.Bytes(), nil
}

// MustBuild is Build for fixtures whose signatures are known literals.
func (m *Module) MustBuild() []byte {
	data, err := m.Build()
	if err != nil {
		panic(err)
	}
	return data
}

func writeSection(w *writer, id byte, data []byte) {
	w.Byte(id)
	w.WriteU32(uint32(len(data)))
	w.WriteBytes(data)
}

func writeValTypes(w *writer, types []guest.ValType) {
	w.WriteU32(uint32(len(types)))
	for _, t := range types {
		w.Byte(coreByte(t))
	}
}

func coreByte(t guest.ValType) byte {
	switch t {
	case guest.I64:
		return 0x7e
	case guest.F32:
		return 0x7d
	case guest.F64:
		return 0x7c
	default:
		return 0x7f
	}
}

func writeZeroConst(w *writer, t guest.ValType) {
	switch t {
	case guest.I64:
		w.Byte(opI64Const)
		w.WriteS64(0)
	case guest.F32:
		w.Byte(opF32Const)
		w.WriteBytes(make([]byte, 4))
	case guest.F64:
		w.Byte(opF64Const)
		w.WriteBytes(make([]byte, 8))
	default:
		w.Byte(opI32Const)
		w.WriteS64(0)
	}
}

// writer builds binary segments with LEB128 integer encoding.
type writer struct {
	buf bytes.Buffer
}

func newWriter() *writer {
	return &writer{}
}

func (w *writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *writer) Len() int {
	return w.buf.Len()
}

func (w *writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU32 encodes v as unsigned LEB128.
func (w *writer) WriteU32(v uint32) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf.WriteByte(b)
		if v == 0 {
			return
		}
	}
}

// WriteS64 encodes v as signed LEB128.
func (w *writer) WriteS64(v int64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			w.buf.WriteByte(b)
			return
		}
		w.buf.WriteByte(b | 0x80)
	}
}

// WriteName writes a length-prefixed UTF-8 name.
func (w *writer) WriteName(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf.WriteString(s)
}

// WriteU32LE writes a fixed-width little-endian u32.
func (w *writer) WriteU32LE(v uint32) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v >> 16))
	w.buf.WriteByte(byte(v >> 24))
}
