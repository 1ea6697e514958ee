// Package rom opens a 3DS CXI/NCSD container, exposes its ExHeader, and
// yields a RomFs — the game's path-indexed read-only file hierarchy.
//
// Grounded on jack/src/rom/cxi.rs (original_source): a 256-byte signature
// prefix, a 256-byte NCSD header carrying a 64-bit title id and an offset in
// media units, then an inner NCCH repeating the title id. The struct-at-fixed-
// offset read style mirrors rpm/lead.go and rpm/header.go's fixed-size
// binary.Read/Write records.
package rom

import (
	"io"
	"os"

	"github.com/rickfay/albw-randomizer/internal/view"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

const (
	signatureLen    = 0x100
	headerLen       = 0x100
	mediaUnitShift  = 9
	ncsdOffsetField = 0x20 // offset of the partition-0 offset field within the NCSD header
	titleIDField    = 0x08 // offset of the 64-bit title id within either header
)

// Region identifies one of the two recognized CXI regions. Any other region
// id makes Open fail with xerrors.Unsupported, per spec.md §3.
type Region int

const (
	RegionUnknown Region = iota
	RegionUS
	RegionEU
)

// knownTitleIDs maps the two recognized ALBW title ids to their Region. Both
// values come from the original game's published title ids (US: CTR-P-ECLE /
// Zelda ALBW NA, EU: CTR-P-ECLP / Zelda ALBW EU); only these two succeed.
var knownTitleIDs = map[uint64]Region{
	0x000400000011C400: RegionUS,
	0x000400000011C500: RegionEU,
}

// Image owns the open ROM file handle. RomFs instances yielded by Image
// borrow its data without closing it.
type Image struct {
	f        *os.File
	size     int64
	titleID  uint64
	region   Region
	ncchOff  uint32 // byte offset of the NCCH partition within the file
	romfsOff uint32 // byte offset of the embedded RomFS within the NCCH partition, once resolved
}

// Open reads just enough of path to validate and locate the embedded RomFS;
// it keeps the file open for subsequent on-demand reads (RomFs borrows from
// it, per spec.md §9's ownership lifecycle: Image owns the handle, RomFs
// borrows from it).
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.IO("rom.Open", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, xerrors.IO("rom.Open", err)
	}

	img := &Image{f: f, size: info.Size()}
	if err := img.parseHeaders(); err != nil {
		f.Close()
		return nil, err
	}
	return img, nil
}

func (img *Image) parseHeaders() error {
	// NCSD header begins right after the 256-byte RSA signature.
	ncsd := make([]byte, headerLen)
	if _, err := img.f.ReadAt(ncsd, signatureLen); err != nil {
		return xerrors.IO("rom.ncsd", err)
	}
	v := view.New("NCSD", ncsd)
	if err := v.Magic(0, []byte("NCSD")); err != nil {
		return err
	}
	titleID, err := v.U64LE(titleIDField)
	if err != nil {
		return err
	}
	mediaUnits, err := v.U32LE(ncsdOffsetField)
	if err != nil {
		return err
	}
	ncchOff := mediaUnits << mediaUnitShift

	// NCCH header repeats the title id; also begins after a signature prefix.
	ncch := make([]byte, headerLen)
	if _, err := img.f.ReadAt(ncch, int64(ncchOff)+signatureLen); err != nil {
		return xerrors.IO("rom.ncch", err)
	}
	nv := view.New("NCCH", ncch)
	if err := nv.Magic(0, []byte("NCCH")); err != nil {
		return err
	}
	ncchTitleID, err := nv.U64LE(titleIDField)
	if err != nil {
		return err
	}
	if ncchTitleID != titleID {
		return xerrors.BadFormat("rom.ncch", "title id mismatch between NCSD and NCCH headers")
	}

	region, ok := knownTitleIDs[titleID]
	if !ok {
		return xerrors.Unsupported("rom.region", "unrecognized title id, expected a decrypted US or EU ALBW image")
	}

	// Offset (in media units) to the RomFS region, relative to the NCCH
	// partition start, is stored at 0x1B0 from the partition start, i.e.
	// 0xB0 into the header that follows the signature (see cxi.rs's
	// try_into_romfs).
	romfsMediaUnits, err := nv.U32LE(0x1B0 - signatureLen)
	if err != nil {
		return err
	}

	img.titleID = titleID
	img.region = region
	img.ncchOff = ncchOff
	img.romfsOff = ncchOff + (romfsMediaUnits << mediaUnitShift)
	return nil
}

// TitleID returns the 64-bit title id read from the container.
func (img *Image) TitleID() uint64 { return img.titleID }

// Region returns the recognized region of the opened image.
func (img *Image) Region() Region { return img.region }

// ExHeader is the extended header of the NCCH partition. Only the fields the
// toolkit needs are exposed; everything else is preserved byte-for-byte if
// ever re-serialized (this module never writes it back, only reads it).
type ExHeader struct {
	raw []byte
}

// ExHeader reads the NCCH's extended header (immediately following the NCCH
// header at the partition offset).
func (img *Image) ExHeader() (*ExHeader, error) {
	const exheaderLen = 0x800
	buf := make([]byte, exheaderLen)
	if _, err := img.f.ReadAt(buf, int64(img.ncchOff)+signatureLen+headerLen); err != nil {
		return nil, xerrors.IO("rom.exheader", err)
	}
	return &ExHeader{raw: buf}, nil
}

// Bytes returns the raw ExHeader payload.
func (e *ExHeader) Bytes() []byte { return e.raw }

// RomFs opens the embedded RomFS region as a read-only path-indexed
// filesystem view.
func (img *Image) RomFs() (*RomFs, error) {
	return openRomFs(io.NewSectionReader(img.f, int64(img.romfsOff), img.size-int64(img.romfsOff)))
}

// Close releases the underlying file handle. Any RomFs obtained from this
// Image must not be used afterwards.
func (img *Image) Close() error { return img.f.Close() }
