package view

import (
	"encoding/binary"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// MutView is a bounds-checked exclusive window into a writable byte buffer.
// A MutView never aliases another MutView or View over the same bytes within
// this codebase; callers are expected to drop a MutView before re-reading the
// owning buffer through a fresh View (see spec.md §9).
type MutView struct {
	which string
	b     []byte
}

// NewMut wraps b as a MutView.
func NewMut(which string, b []byte) MutView {
	return MutView{which: which, b: b}
}

// Bytes returns the raw underlying slice.
func (v MutView) Bytes() []byte { return v.b }

// Len returns the number of bytes in the view.
func (v MutView) Len() int { return len(v.b) }

func (v MutView) require(offset, need int) error {
	if offset < 0 || need < 0 || offset+need > len(v.b) {
		return xerrors.Truncated(v.which, offset, need, len(v.b))
	}
	return nil
}

// SetU8 writes a byte at offset.
func (v MutView) SetU8(offset int, val uint8) error {
	if err := v.require(offset, 1); err != nil {
		return err
	}
	v.b[offset] = val
	return nil
}

// SetU16LE writes a little-endian uint16 at offset.
func (v MutView) SetU16LE(offset int, val uint16) error {
	if err := v.require(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(v.b[offset:], val)
	return nil
}

// SetU32LE writes a little-endian uint32 at offset.
func (v MutView) SetU32LE(offset int, val uint32) error {
	if err := v.require(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(v.b[offset:], val)
	return nil
}

// SetF32LE writes a little-endian IEEE-754 float32 at offset.
func (v MutView) SetF32LE(offset int, val float32) error {
	return v.SetU32LE(offset, float32ToU32(val))
}

// AsView returns a read-only View over the same bytes. Use sparingly: the
// caller is responsible for not holding both concurrently in a way that
// violates the single-writer rule.
func (v MutView) AsView() View { return View{which: v.which, b: v.b} }
