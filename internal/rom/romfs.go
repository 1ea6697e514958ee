package rom

import (
	"io"
	"strings"
	"sync"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// RomFs is a random-access reader over the game's file hierarchy, addressed
// by `/`-separated path. spec.md §3 only requires one operation: read a
// whole file by path into a borrowed buffer. Internally it is backed by a
// Lv3-style metadata format (header with hash/meta table offsets for
// directories and files, each entry naming its parent/sibling/child and, for
// files, a data offset+size) — the same "header names table offsets, tables
// are walked to resolve a path" shape used by the hash-bucket archives this
// toolkit deals with elsewhere (see internal/sarc, and the hash-table design
// in the MPQ reference reader).
//
// spec.md §5 calls the RomFs reader a shared resource with interior
// mutability for seek+read: callers borrow read access non-overlappingly.
// Here a mutex guards lookups in the path index; the data reads themselves
// go through ReadAt, which needs no lock. The index is built once, by
// openRomFs, before the RomFs is returned.
type RomFs struct {
	mu    sync.Mutex
	r     io.ReaderAt
	index map[string]fileSpan
}

type fileSpan struct {
	offset int64
	size   int64
}

type lv3Header struct {
	headerLen          uint32
	dirHashOff         uint32
	dirHashLen         uint32
	dirMetaOff         uint32
	dirMetaLen         uint32
	fileHashOff        uint32
	fileHashLen        uint32
	fileMetaOff        uint32
	fileMetaLen        uint32
	fileDataOff        uint32
}

func openRomFs(r io.ReaderAt) (*RomFs, error) {
	raw := make([]byte, 0x28)
	if _, err := r.ReadAt(raw, 0); err != nil {
		return nil, xerrors.IO("romfs.header", err)
	}
	h := parseLv3Header(raw)

	dirMeta := make([]byte, h.dirMetaLen)
	if _, err := r.ReadAt(dirMeta, int64(h.dirMetaOff)); err != nil {
		return nil, xerrors.IO("romfs.dirmeta", err)
	}
	fileMeta := make([]byte, h.fileMetaLen)
	if _, err := r.ReadAt(fileMeta, int64(h.fileMetaOff)); err != nil {
		return nil, xerrors.IO("romfs.filemeta", err)
	}

	index := make(map[string]fileSpan)
	if err := walkDir(dirMeta, fileMeta, 0, "", index); err != nil {
		return nil, err
	}
	for path, span := range index {
		index[path] = fileSpan{offset: span.offset + int64(h.fileDataOff), size: span.size}
	}

	return &RomFs{r: r, index: index}, nil
}

func le32(b []byte, off uint32) uint32 {
	if int(off)+4 > len(b) {
		return 0xFFFFFFFF
	}
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}

func le64(b []byte, off uint32) uint64 {
	lo := uint64(le32(b, off))
	hi := uint64(le32(b, off+4))
	return lo | hi<<32
}

func parseLv3Header(b []byte) lv3Header {
	return lv3Header{
		headerLen:   le32(b, 0x00),
		dirHashOff:  le32(b, 0x04),
		dirHashLen:  le32(b, 0x08),
		dirMetaOff:  le32(b, 0x0C),
		dirMetaLen:  le32(b, 0x10),
		fileHashOff: le32(b, 0x14),
		fileHashLen: le32(b, 0x18),
		fileMetaOff: le32(b, 0x1C),
		fileMetaLen: le32(b, 0x20),
		fileDataOff: le32(b, 0x24),
	}
}

const noEntry = 0xFFFFFFFF

// dirEntry layout: parent(4) sibling(4) child(4) file(4) prevSameHash(4) nameLen(4) name(utf16, padded to 4)
// fileEntry layout: parent(4) sibling(4) dataOff(8) dataSize(8) prevSameHash(4) nameLen(4) name(utf16, padded to 4)

func walkDir(dirMeta, fileMeta []byte, dirOff uint32, prefix string, index map[string]fileSpan) error {
	if dirOff == noEntry || int(dirOff)+0x18 > len(dirMeta) {
		return nil
	}
	childDir := le32(dirMeta, dirOff+0x08)
	firstFile := le32(dirMeta, dirOff+0x0C)
	sibling := le32(dirMeta, dirOff+0x04)

	// prefix is the parent's path; the root directory has an empty name.
	dirPrefix := prefix
	if name := decodeUTF16LEPadded(dirMeta, dirOff+0x18, le32(dirMeta, dirOff+0x14)); name != "" {
		dirPrefix = prefix + name + "/"
	}

	// descend into the first child directory, then continue this directory's
	// own sibling chain (both chains are singly linked lists of offsets).
	if err := walkDir(dirMeta, fileMeta, childDir, dirPrefix, index); err != nil {
		return err
	}

	// files directly in this directory
	fileOff := firstFile
	for fileOff != noEntry {
		if int(fileOff)+0x20 > len(fileMeta) {
			break
		}
		nameLen := le32(fileMeta, fileOff+0x1C)
		name := decodeUTF16LEPadded(fileMeta, fileOff+0x20, nameLen)
		dataOff := int64(le64(fileMeta, fileOff+0x08))
		dataSize := int64(le64(fileMeta, fileOff+0x10))
		index[dirPrefix+name] = fileSpan{offset: dataOff, size: dataSize}
		fileOff = le32(fileMeta, fileOff+0x04)
	}

	return walkDir(dirMeta, fileMeta, sibling, prefix, index)
}

func decodeUTF16LEPadded(b []byte, off, byteLen uint32) string {
	if int(off)+int(byteLen) > len(b) {
		return ""
	}
	raw := b[off : off+byteLen]
	var sb strings.Builder
	for i := 0; i+1 < len(raw); i += 2 {
		u := uint16(raw[i]) | uint16(raw[i+1])<<8
		if u == 0 {
			break
		}
		sb.WriteRune(rune(u))
	}
	return sb.String()
}

// ReadFile reads the whole file at path into a freshly allocated buffer. The
// buffer is owned by the caller (spec.md §9: "an archive owns its
// decompressed bytes once loaded").
func (fs *RomFs) ReadFile(path string) ([]byte, error) {
	fs.mu.Lock()
	span, ok := fs.index[path]
	fs.mu.Unlock()
	if !ok {
		return nil, xerrors.IO("romfs.ReadFile", errNotFound(path))
	}
	buf := make([]byte, span.size)
	if span.size > 0 {
		if _, err := fs.r.ReadAt(buf, span.offset); err != nil {
			return nil, xerrors.IO("romfs.ReadFile", err)
		}
	}
	return buf, nil
}

// Paths returns every indexed file path, for tooling (e.g. `dump`) that
// needs to enumerate the tree.
func (fs *RomFs) Paths() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]string, 0, len(fs.index))
	for p := range fs.index {
		out = append(out, p)
	}
	return out
}

type notFoundError string

func (e notFoundError) Error() string { return "file not found in RomFs: " + string(e) }

func errNotFound(path string) error { return notFoundError(path) }
