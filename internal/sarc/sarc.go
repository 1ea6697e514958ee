// Package sarc implements the hash-indexed SARC archive container used for
// most files embedded in the game's RomFS (spec.md §4.2). An archive maps a
// filename hash to one or more entries; a stored filename only sticks around
// when needed to disambiguate a hash collision.
//
// The hash-bucket-with-collision-count shape is grounded on the MPQ hash
// table reference (hashEntry/blockEntry, progressive-overflow-on-collision)
// from the retrieval pack, adapted to SARC's simpler "collision count lives
// in the attribute byte, names only materialize on collision" scheme. The
// SFAT/SFNT/data three-table layout and fixed-width record style follow the
// same struct-at-offset idiom as internal/rom's NCSD/NCCH headers.
package sarc

import (
	"encoding/binary"
	"sort"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

const (
	headerMagic  = "SARC"
	headerSize   = 0x14
	bom          = 0xFEFF // stored little-endian as bytes FF FE
	sfatMagic    = "SFAT"
	sfatEntryLen = 0x10
	sfntMagic    = "SFNT"
	dataAlign    = 0x80
	nameAlign    = 4
)

// Entry is one file stored in an archive.
type Entry struct {
	Hash  uint32
	Name  string // present only when Named is true
	Named bool
	Data  []byte
}

// Archive is a parsed SARC container. Entries preserve SFAT order (which is
// hash-sorted, per the format); ToBytes re-derives that order rather than
// trusting insertion order, since create/update/delete can perturb it.
type Archive struct {
	version    uint16
	multiplier uint32
	entries    []*Entry
	byHash     map[uint32][]*Entry
}

// Hash computes the SARC filename hash: fold(h=0, h = h*M + ord(c)) over the
// name's bytes, per spec.md §4.2.
func Hash(name string, multiplier uint32) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*multiplier + uint32(name[i])
	}
	return h
}

// DefaultMultiplier is the conventional SARC hash multiplier used when
// creating a fresh archive.
const DefaultMultiplier = 0x65

// Open parses a SARC archive from raw bytes.
func Open(data []byte) (*Archive, error) {
	if len(data) < headerSize {
		return nil, xerrors.Truncated("sarc.header", 0, headerSize, len(data))
	}
	if string(data[0:4]) != headerMagic {
		return nil, xerrors.BadFormat("sarc.header", "bad SARC magic")
	}
	hdrLen := binary.LittleEndian.Uint16(data[4:6])
	if hdrLen != headerSize {
		return nil, xerrors.BadFormat("sarc.header", "unexpected header size")
	}
	gotBOM := binary.LittleEndian.Uint16(data[6:8])
	if gotBOM != bom {
		return nil, xerrors.BadFormat("sarc.header", "unexpected byte-order mark")
	}
	// fileSize at 0x08, dataOff at 0x0C, version at 0x10, reserved at 0x12.
	dataOff := binary.LittleEndian.Uint32(data[0x0C:0x10])
	version := binary.LittleEndian.Uint16(data[0x10:0x12])

	if len(data) < headerSize+8 {
		return nil, xerrors.Truncated("sarc.sfat.header", headerSize, 8, len(data)-headerSize)
	}
	sfatOff := headerSize
	if string(data[sfatOff:sfatOff+4]) != sfatMagic {
		return nil, xerrors.BadFormat("sarc.sfat", "bad SFAT magic")
	}
	sfatHdrLen := binary.LittleEndian.Uint16(data[sfatOff+4 : sfatOff+6])
	entryCount := binary.LittleEndian.Uint16(data[sfatOff+6 : sfatOff+8])
	// next 4 bytes: hash multiplier
	multOff := sfatOff + 8
	multiplier := binary.LittleEndian.Uint32(data[multOff : multOff+4])

	recordsOff := sfatOff + int(sfatHdrLen)
	recordsLen := int(entryCount) * sfatEntryLen
	if recordsOff+recordsLen > len(data) {
		return nil, xerrors.Truncated("sarc.sfat.records", recordsOff, recordsLen, len(data)-recordsOff)
	}

	sfntOff := recordsOff + recordsLen
	if sfntOff+8 > len(data) {
		return nil, xerrors.Truncated("sarc.sfnt.header", sfntOff, 8, len(data)-sfntOff)
	}
	if string(data[sfntOff:sfntOff+4]) != sfntMagic {
		return nil, xerrors.BadFormat("sarc.sfnt", "bad SFNT magic")
	}
	sfntHdrLen := binary.LittleEndian.Uint16(data[sfntOff+4 : sfntOff+6])
	sfntDataOff := sfntOff + int(sfntHdrLen)

	entries := make([]*Entry, 0, entryCount)
	byHash := make(map[uint32][]*Entry)
	for i := 0; i < int(entryCount); i++ {
		rec := data[recordsOff+i*sfatEntryLen:]
		hash := binary.LittleEndian.Uint32(rec[0:4])
		attrs := binary.LittleEndian.Uint32(rec[4:8])
		start := binary.LittleEndian.Uint32(rec[8:12])
		end := binary.LittleEndian.Uint32(rec[12:16])

		collisionCount := byte(attrs >> 24)
		nameOffWords := attrs & 0x00FFFFFF

		absStart := int(dataOff) + int(start)
		absEnd := int(dataOff) + int(end)
		if absEnd > len(data) || absStart > absEnd {
			return nil, xerrors.BadFormat("sarc.entry", "data range out of bounds")
		}

		e := &Entry{Hash: hash, Data: data[absStart:absEnd:absEnd]}
		if collisionCount != 0 {
			nameOff := sfntDataOff + int(nameOffWords)*4
			name, err := readNulString(data, nameOff)
			if err != nil {
				return nil, err
			}
			e.Name = name
			e.Named = true
		}
		entries = append(entries, e)
		byHash[hash] = append(byHash[hash], e)
	}

	return &Archive{version: version, multiplier: multiplier, entries: entries, byHash: byHash}, nil
}

// New creates an empty archive using the default hash multiplier.
func New() *Archive {
	return &Archive{version: 0x0100, multiplier: DefaultMultiplier, byHash: make(map[uint32][]*Entry)}
}

func readNulString(data []byte, off int) (string, error) {
	end := off
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end >= len(data) {
		return "", xerrors.BadFormat("sarc.sfnt", "unterminated filename")
	}
	return string(data[off:end]), nil
}

// Read returns the bytes stored under name, disambiguating hash collisions
// by stored filename. Fails when no entry resolves unambiguously.
func (a *Archive) Read(name string) ([]byte, error) {
	h := Hash(name, a.multiplier)
	bucket := a.byHash[h]
	switch len(bucket) {
	case 0:
		return nil, xerrors.IO("sarc.Read", errFileNotFound(name))
	case 1:
		if bucket[0].Named && bucket[0].Name != name {
			return nil, xerrors.IO("sarc.Read", errFileNotFound(name))
		}
		return bucket[0].Data, nil
	default:
		for _, e := range bucket {
			if e.Named && e.Name == name {
				return e.Data, nil
			}
		}
		return nil, xerrors.BadFormat("sarc.Read", "hash collision without disambiguating name: "+name)
	}
}

// Create inserts a new file. named must be true when its hash collides with
// an existing entry, per spec.md §4.2.
func (a *Archive) Create(name string, data []byte, named bool) error {
	h := Hash(name, a.multiplier)
	bucket := a.byHash[h]
	if len(bucket) > 0 {
		if !named {
			return xerrors.BadFormat("sarc.Create", "HashCollisionWithoutName: "+name)
		}
		for _, e := range bucket {
			if e.Named && e.Name == name {
				return xerrors.BadFormat("sarc.Create", "DuplicateInsertion: "+name)
			}
		}
		// mark any prior unnamed entry in this bucket as named too, since the
		// bucket can no longer be resolved without stored names once it holds
		// more than one member.
		for _, e := range bucket {
			e.Named = true
		}
	}
	e := &Entry{Hash: h, Name: name, Named: named || len(bucket) > 0, Data: data}
	a.entries = append(a.entries, e)
	a.byHash[h] = append(a.byHash[h], e)
	return nil
}

// Update replaces the bytes stored under name. Fails if the file doesn't exist.
func (a *Archive) Update(name string, data []byte) error {
	e, err := a.find(name)
	if err != nil {
		return err
	}
	e.Data = data
	return nil
}

// Delete removes the file stored under name.
func (a *Archive) Delete(name string) error {
	h := Hash(name, a.multiplier)
	bucket := a.byHash[h]
	idx := -1
	for i, e := range bucket {
		if !e.Named || e.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return xerrors.IO("sarc.Delete", errFileNotFound(name))
	}
	target := bucket[idx]
	a.byHash[h] = append(bucket[:idx], bucket[idx+1:]...)
	if len(a.byHash[h]) == 0 {
		delete(a.byHash, h)
	}
	for i, e := range a.entries {
		if e == target {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (a *Archive) find(name string) (*Entry, error) {
	h := Hash(name, a.multiplier)
	bucket := a.byHash[h]
	switch len(bucket) {
	case 0:
		return nil, xerrors.IO("sarc.find", errFileNotFound(name))
	case 1:
		if bucket[0].Named && bucket[0].Name != name {
			return nil, xerrors.IO("sarc.find", errFileNotFound(name))
		}
		return bucket[0], nil
	default:
		for _, e := range bucket {
			if e.Named && e.Name == name {
				return e, nil
			}
		}
		return nil, xerrors.BadFormat("sarc.find", "hash collision without disambiguating name: "+name)
	}
}

// Names returns the stored filenames of every named entry (unnamed entries
// that never collided have no recoverable name).
func (a *Archive) Names() []string {
	var names []string
	for _, e := range a.entries {
		if e.Named {
			names = append(names, e.Name)
		}
	}
	return names
}

type fileNotFoundError string

func (e fileNotFoundError) Error() string { return "file not found in archive: " + string(e) }
func errFileNotFound(name string) error   { return fileNotFoundError(name) }

func align(n, to int) int {
	if r := n % to; r != 0 {
		return n + (to - r)
	}
	return n
}

// ToBytes re-serializes the archive: SFAT (hash-sorted), SFNT (NUL-terminated
// names, 4-byte padded), then the data region aligned to 0x80. File-type-
// specific alignment is out of scope (spec.md §4.2's documented Open
// Question); every payload uses the single 0x80 alignment.
func (a *Archive) ToBytes() []byte {
	sorted := make([]*Entry, len(a.entries))
	copy(sorted, a.entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hash < sorted[j].Hash })

	// Build SFNT name table first so SFAT entries can reference name offsets.
	var sfntBody []byte
	nameOffsets := make(map[*Entry]uint32)
	for _, e := range sorted {
		if !e.Named {
			continue
		}
		nameOffsets[e] = uint32(len(sfntBody)) / 4
		sfntBody = append(sfntBody, []byte(e.Name)...)
		sfntBody = append(sfntBody, 0)
		for len(sfntBody)%nameAlign != 0 {
			sfntBody = append(sfntBody, 0)
		}
	}

	sfatHdrLen := 0x0C
	sfatRecordsLen := len(sorted) * sfatEntryLen
	sfntHdrLen := 0x08

	dataRegionStart := headerSize + sfatHdrLen + sfatRecordsLen + sfntHdrLen + len(sfntBody)
	dataRegionStart = align(dataRegionStart, dataAlign)

	var dataBuf []byte
	starts := make([]uint32, len(sorted))
	ends := make([]uint32, len(sorted))
	for i, e := range sorted {
		for len(dataBuf)%dataAlign != 0 {
			dataBuf = append(dataBuf, 0)
		}
		starts[i] = uint32(len(dataBuf))
		dataBuf = append(dataBuf, e.Data...)
		ends[i] = uint32(len(dataBuf))
	}

	totalSize := dataRegionStart + len(dataBuf)

	out := make([]byte, 0, totalSize)
	putU16 := func(v uint16) { out = append(out, byte(v), byte(v>>8)) }
	putU32 := func(v uint32) {
		out = append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}

	// SARC header
	out = append(out, headerMagic...)
	putU16(headerSize)
	putU16(bom)
	putU32(uint32(totalSize))
	putU32(uint32(dataRegionStart))
	putU16(a.version)
	putU16(0) // reserved

	// SFAT header
	out = append(out, sfatMagic...)
	putU16(uint16(sfatHdrLen))
	putU16(uint16(len(sorted)))
	putU32(a.multiplier)

	// SFAT records
	for i, e := range sorted {
		putU32(e.Hash)
		var attrs uint32
		if e.Named {
			attrs = uint32(1)<<24 | (nameOffsets[e] & 0x00FFFFFF)
		}
		putU32(attrs)
		putU32(starts[i])
		putU32(ends[i])
	}

	// SFNT header + body
	out = append(out, sfntMagic...)
	putU16(uint16(sfntHdrLen))
	putU16(0) // reserved
	out = append(out, sfntBody...)

	for len(out) < dataRegionStart {
		out = append(out, 0)
	}
	out = append(out, dataBuf...)

	return out
}
