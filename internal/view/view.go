// Package view provides bounds-checked, typed windows over borrowed byte
// slices: magic comparisons, little/big-endian scalar reads and writes,
// sub-array slicing. Every on-disk format parser in this module (RomFs,
// Yaz0, SARC, BYAML, MsgBn, FlowGraph, SceneModel) is built on top of these
// primitives rather than re-deriving bounds checks for each format.
//
// A View is read-only and borrows a shared slice. A MutView borrows an
// exclusive, writable slice; the two never alias in this codebase (see
// spec.md §9 on ownership).
package view

import (
	"encoding/binary"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// View is a bounds-checked read-only window into a byte buffer.
type View struct {
	which string
	b     []byte
}

// New wraps b as a View, tagging errors with which (the format/component name
// used in diagnostics).
func New(which string, b []byte) View {
	return View{which: which, b: b}
}

// Bytes returns the raw underlying slice. Callers must not mutate it.
func (v View) Bytes() []byte { return v.b }

// Len returns the number of bytes in the view.
func (v View) Len() int { return len(v.b) }

// Slice returns the sub-view [start:end), bounds-checked.
func (v View) Slice(start, end int) (View, error) {
	if start < 0 || end < start || end > len(v.b) {
		return View{}, xerrors.Truncated(v.which, start, end-start, len(v.b))
	}
	return View{which: v.which, b: v.b[start:end]}, nil
}

// require fails with Truncated unless offset+need <= len(b).
func (v View) require(offset, need int) error {
	if offset < 0 || need < 0 || offset+need > len(v.b) {
		return xerrors.Truncated(v.which, offset, need, len(v.b))
	}
	return nil
}

// Magic compares the bytes at offset against want, failing with BadFormat on
// mismatch (including truncation).
func (v View) Magic(offset int, want []byte) error {
	if err := v.require(offset, len(want)); err != nil {
		return err
	}
	got := v.b[offset : offset+len(want)]
	for i := range want {
		if got[i] != want[i] {
			return xerrors.BadFormat(v.which, "magic mismatch at offset "+itoa(offset))
		}
	}
	return nil
}

// U8 reads a byte at offset.
func (v View) U8(offset int) (uint8, error) {
	if err := v.require(offset, 1); err != nil {
		return 0, err
	}
	return v.b[offset], nil
}

// U16LE reads a little-endian uint16 at offset.
func (v View) U16LE(offset int) (uint16, error) {
	if err := v.require(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(v.b[offset:]), nil
}

// U16BE reads a big-endian uint16 at offset.
func (v View) U16BE(offset int) (uint16, error) {
	if err := v.require(offset, 2); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(v.b[offset:]), nil
}

// U32LE reads a little-endian uint32 at offset.
func (v View) U32LE(offset int) (uint32, error) {
	if err := v.require(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v.b[offset:]), nil
}

// U32BE reads a big-endian uint32 at offset.
func (v View) U32BE(offset int) (uint32, error) {
	if err := v.require(offset, 4); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(v.b[offset:]), nil
}

// U64LE reads a little-endian uint64 at offset.
func (v View) U64LE(offset int) (uint64, error) {
	if err := v.require(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(v.b[offset:]), nil
}

// I16LE reads a little-endian int16 at offset.
func (v View) I16LE(offset int) (int16, error) {
	u, err := v.U16LE(offset)
	return int16(u), err
}

// F32LE reads a little-endian IEEE-754 float32 at offset.
func (v View) F32LE(offset int) (float32, error) {
	u, err := v.U32LE(offset)
	if err != nil {
		return 0, err
	}
	return u32ToFloat32(u), nil
}

// BytesAt returns the n bytes at offset as a borrowed sub-slice.
func (v View) BytesAt(offset, n int) ([]byte, error) {
	if err := v.require(offset, n); err != nil {
		return nil, err
	}
	return v.b[offset : offset+n], nil
}

func itoa(n int) string {
	// small, alloc-light int->string to avoid importing strconv in the hot
	// path of every bounds check.
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
