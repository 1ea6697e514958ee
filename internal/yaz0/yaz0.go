// Package yaz0 implements stream (de)compression for the `.szs` payloads
// wrapping SARC archives throughout the ROM (spec.md §2, §4.2). Yaz0 is
// Nintendo's LZ77 variant: an 8-bit flag byte selects, bit by bit, between a
// literal byte and a back-reference encoded as 2 or 3 bytes.
//
// Grounded on the dsnet/compress bzip2 Writer/Reader shape (buffer-in,
// buffer-out streaming codec with a small internal struct carrying position
// state) from the retrieval pack, adapted to Yaz0's much simpler format.
package yaz0

import (
	"encoding/binary"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

var magic = []byte("Yaz0")

const headerLen = 0x10

// Decompress decodes a Yaz0 stream, returning the original bytes.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < headerLen {
		return nil, xerrors.Truncated("yaz0.header", 0, headerLen, len(data))
	}
	for i, m := range magic {
		if data[i] != m {
			return nil, xerrors.BadFormat("yaz0.header", "bad magic")
		}
	}
	size := binary.BigEndian.Uint32(data[4:8])
	out := make([]byte, 0, size)
	src := data[headerLen:]

	var code byte
	var validBits uint
	pos := 0

	for len(out) < int(size) {
		if validBits == 0 {
			if pos >= len(src) {
				return nil, xerrors.Truncated("yaz0.stream", pos, 1, len(src))
			}
			code = src[pos]
			pos++
			validBits = 8
		}

		if code&0x80 != 0 {
			if pos >= len(src) {
				return nil, xerrors.Truncated("yaz0.literal", pos, 1, len(src))
			}
			out = append(out, src[pos])
			pos++
		} else {
			if pos+1 >= len(src) {
				return nil, xerrors.Truncated("yaz0.backref", pos, 2, len(src))
			}
			b0 := src[pos]
			b1 := src[pos+1]
			pos += 2
			dist := int(b0&0x0F)<<8 | int(b1)
			dist++
			length := int(b0 >> 4)
			if length == 0 {
				if pos >= len(src) {
					return nil, xerrors.Truncated("yaz0.backref.len", pos, 1, len(src))
				}
				length = int(src[pos]) + 0x12
				pos++
			} else {
				length += 2
			}
			if dist > len(out) {
				return nil, xerrors.BadFormat("yaz0.backref", "distance exceeds output produced so far")
			}
			start := len(out) - dist
			for i := 0; i < length; i++ {
				out = append(out, out[start+i])
			}
		}
		code <<= 1
		validBits--
	}
	return out, nil
}

// compress parameters: a back-reference can span at most this many bytes
// back, and cover at most this many bytes.
const (
	maxDistance = 0x1000
	minMatchLen = 3
	maxMatchLen = 0xFF + 0x12
)

// Compress encodes data as a Yaz0 stream such that Decompress(Compress(data))
// == data. The matcher is a straightforward greedy longest-match search
// within the window; it favors clarity and correctness over the most
// aggressive possible ratio.
func Compress(data []byte) []byte {
	out := make([]byte, headerLen)
	copy(out, magic)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(data)))
	// out[8:16] reserved, left zero.

	var groupBuf []byte
	var code byte
	var bitCount uint

	flush := func() {
		if bitCount == 0 {
			return
		}
		code <<= (8 - bitCount)
		out = append(out, code)
		out = append(out, groupBuf...)
		groupBuf = groupBuf[:0]
		code = 0
		bitCount = 0
	}

	pos := 0
	for pos < len(data) {
		dist, length := findMatch(data, pos)
		code <<= 1
		if length < minMatchLen {
			code |= 1
			groupBuf = append(groupBuf, data[pos])
			pos++
		} else {
			encodeBackref(&groupBuf, dist, length)
			pos += length
		}
		bitCount++
		if bitCount == 8 {
			flush()
		}
	}
	flush()
	return out
}

func encodeBackref(buf *[]byte, dist, length int) {
	d := dist - 1
	if length <= 0x11 {
		b0 := byte((length-2)<<4) | byte(d>>8)
		b1 := byte(d)
		*buf = append(*buf, b0, b1)
	} else {
		b0 := byte(d >> 8) // top nibble stays 0, signaling the 3-byte form
		b1 := byte(d)
		b2 := byte(length - 0x12)
		*buf = append(*buf, b0, b1, b2)
	}
}

func findMatch(data []byte, pos int) (dist, length int) {
	windowStart := pos - maxDistance
	if windowStart < 0 {
		windowStart = 0
	}
	bestLen := 0
	bestDist := 0
	maxLen := len(data) - pos
	if maxLen > maxMatchLen {
		maxLen = maxMatchLen
	}
	if maxLen < minMatchLen {
		return 0, 0
	}
	for start := pos - 1; start >= windowStart; start-- {
		l := 0
		for l < maxLen && data[start+l] == data[pos+l] {
			l++
		}
		if l > bestLen {
			bestLen = l
			bestDist = pos - start
			if bestLen == maxLen {
				break
			}
		}
	}
	return bestDist, bestLen
}
