// Package msgbn implements the generic container framing shared by the
// game's flow (`MsgFlwBn`) and message (`MsgStdBn`) bundles (spec.md §4.1,
// §3): a file header (bundle-specific 8-byte magic, BOM, encoding, version,
// block count, total size) followed by N sections, each prefixed with a
// 4-byte magic and a payload size, padded to 16-byte alignment.
//
// Grounded on the same "header + binary.Read fixed struct" idiom the teacher
// uses throughout rpm/header.go, generalized into a section-table parser
// since a bundle's body isn't one fixed struct but a sequence of
// self-describing chunks (the same generalization internal/sarc and
// internal/byaml make from single-struct to tagged-table formats).
package msgbn

import (
	"encoding/binary"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

const (
	fileHeaderLen = 0x20
	sectionAlign  = 16
	bomBigEndian  = 0xFEFF
)

// Encoding identifies the payload text encoding declared in the file header.
type Encoding uint8

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16
	EncodingUTF32
)

// Section is one tagged, size-prefixed chunk of a bundle's body.
type Section struct {
	Magic   string
	Payload []byte // excludes the section header, includes only declared-size bytes (no alignment padding)
}

// Bundle is a parsed MsgBn container: the file header fields plus its
// ordered sections. Unknown section magics are preserved verbatim — callers
// that understand a given magic (FLW3, LBL1, ...) reinterpret its Payload;
// everything else round-trips untouched.
type Bundle struct {
	Magic      [8]byte
	BigEndian  bool
	Encoding   Encoding
	Version    uint8
	Sections   []Section
}

func (b *Bundle) order() binary.ByteOrder {
	if b.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Parse validates the file header and walks exactly blockCount sections,
// per spec.md §4.1's parse_sections. magic must match the file's 8-byte
// bundle-specific magic exactly.
func Parse(data []byte, magic [8]byte) (*Bundle, error) {
	if len(data) < fileHeaderLen {
		return nil, xerrors.Truncated("msgbn.header", 0, fileHeaderLen, len(data))
	}
	for i := range magic {
		if data[i] != magic[i] {
			return nil, xerrors.BadFormat("msgbn.header", "bad bundle magic")
		}
	}
	bomRaw := binary.BigEndian.Uint16(data[8:10])
	var bigEndian bool
	switch bomRaw {
	case bomBigEndian:
		bigEndian = true
	case 0xFFFE:
		bigEndian = false
	default:
		return nil, xerrors.BadFormat("msgbn.header", "bad BOM")
	}
	var order binary.ByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}

	encodingByte := data[10]
	version := data[11]
	blockCount := order.Uint16(data[12:14])
	// data[14:16] reserved
	fileSize := order.Uint32(data[16:20])
	if int(fileSize) != len(data) {
		return nil, xerrors.BadFormat("msgbn.header", "declared file size does not match buffer length")
	}

	b := &Bundle{BigEndian: bigEndian, Encoding: Encoding(encodingByte), Version: version}
	copy(b.Magic[:], magic[:])

	pos := fileHeaderLen
	for i := uint16(0); i < blockCount; i++ {
		if pos+8 > len(data) {
			return nil, xerrors.Truncated("msgbn.section.header", pos, 8, len(data)-pos)
		}
		secMagic := string(data[pos : pos+4])
		size := order.Uint32(data[pos+4 : pos+8])
		// reserved bytes (section header may be wider than 8 in some
		// variants); spec.md §3 says "4-byte magic, 32-bit size, reserved
		// bytes, payload padded to 16-byte alignment" — reserved padding
		// brings the header itself to a 16-byte-aligned boundary.
		payloadStart := align(pos+8, sectionAlign)
		if payloadStart+int(size) > len(data) {
			return nil, xerrors.Truncated("msgbn.section.payload", payloadStart, int(size), len(data)-payloadStart)
		}
		b.Sections = append(b.Sections, Section{
			Magic:   secMagic,
			Payload: data[payloadStart : payloadStart+int(size) : payloadStart+int(size)],
		})
		pos = align(payloadStart+int(size), sectionAlign)
	}

	return b, nil
}

func align(n, to int) int {
	if r := n % to; r != 0 {
		return n + (to - r)
	}
	return n
}

// Section returns the first section with the given magic, if any.
func (b *Bundle) Section(magic string) (Section, bool) {
	for _, s := range b.Sections {
		if s.Magic == magic {
			return s, true
		}
	}
	return Section{}, false
}

// ToBytes re-serializes the bundle: file header, then each section padded to
// 16-byte alignment, in the same order they appear in b.Sections. Per
// spec.md §3's round-trip invariant, this reproduces an equivalent bundle
// (same section order and payload) even when a section's own internal
// table has been rebuilt from scratch (e.g. LBL1's hash buckets).
func (b *Bundle) ToBytes() []byte {
	order := b.order()

	var body []byte
	for _, s := range b.Sections {
		hdr := make([]byte, 8)
		copy(hdr, []byte(s.Magic))
		order.PutUint32(hdr[4:8], uint32(len(s.Payload)))
		body = append(body, hdr...)
		for len(body)%sectionAlign != 0 {
			body = append(body, 0)
		}
		body = append(body, s.Payload...)
		for len(body)%sectionAlign != 0 {
			body = append(body, 0)
		}
	}

	out := make([]byte, fileHeaderLen)
	copy(out, b.Magic[:])
	if b.BigEndian {
		binary.BigEndian.PutUint16(out[8:10], bomBigEndian)
	} else {
		binary.BigEndian.PutUint16(out[8:10], 0xFFFE)
	}
	out[10] = byte(b.Encoding)
	out[11] = b.Version
	order.PutUint16(out[12:14], uint16(len(b.Sections)))
	out = append(out, body...)
	order.PutUint32(out[16:20], uint32(len(out)))
	return out
}
