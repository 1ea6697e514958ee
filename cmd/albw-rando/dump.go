package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"
	"github.com/surma/gocpio"

	"github.com/rickfay/albw-randomizer/internal/rom"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// runDump is a read-only inspection command grounded on the teacher's
// sister dump-package binary: read one file out of a ROM's romfs and either
// report its size or export it as a single-entry cpio archive. Where the
// teacher's own sister binary (rpm/payload.go) hand-rolls an ASCII cpio
// writer instead of using a library, this wires github.com/surma/gocpio,
// which the teacher's own go.mod already lists as a dependency but never
// imports.
func runDump(args []string) error {
	fs := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	romPath := fs.String("rom", "", "path to the input 3DS ROM image")
	romfsPath := fs.String("path", "", "romfs-internal path to inspect")
	cpioPath := fs.String("cpio", "", "optional path to export the file as a cpio archive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *romPath == "" || *romfsPath == "" {
		return fmt.Errorf("dump: --rom and --path are required")
	}

	img, err := rom.Open(*romPath)
	if err != nil {
		return err
	}
	defer img.Close()

	romfs, err := img.RomFs()
	if err != nil {
		return err
	}

	data, err := romfs.ReadFile(*romfsPath)
	if err != nil {
		return err
	}

	if *cpioPath == "" {
		fmt.Printf("%s: %d byte(s)\n", *romfsPath, len(data))
		return nil
	}

	return writeCpio(*cpioPath, *romfsPath, data)
}

func writeCpio(cpioPath, romfsPath string, data []byte) error {
	f, err := os.Create(cpioPath)
	if err != nil {
		return xerrors.IO("dump: create cpio archive", err)
	}
	defer f.Close()

	w := cpio.NewWriter(f)
	defer w.Close()

	hdr := &cpio.Header{
		Name: filepath.Base(romfsPath),
		Mode: 0o644,
		Size: int64(len(data)),
	}
	if err := w.WriteHeader(hdr); err != nil {
		return xerrors.IO("dump: write cpio header", err)
	}
	if _, err := w.Write(data); err != nil {
		return xerrors.IO("dump: write cpio contents", err)
	}
	return nil
}
