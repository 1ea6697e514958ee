// Command albw-rando is the orchestrator CLI (spec.md §6 External Interfaces):
// a "generate" subcommand that runs the full pipeline from a ROM and a
// settings preset to a patched set of romfs files plus an optional spoiler
// log, and a "dump" subcommand for read-only romfs inspection.
//
// Grounded on the teacher's holo-build/main.go (parse args, run the
// pipeline, report with one diagnostic line per error and a process exit
// code) and its sister dump-package binary (a second, read-only inspection
// command living next to the main one). Unlike the teacher, this program
// wires github.com/ogier/pflag for real argument parsing instead of a hand-
// rolled os.Args switch, since this CLI has real flags (paths, a seed
// integer, a verbosity toggle) rather than the teacher's closed set of
// boolean format switches.
package main

import (
	"fmt"
	"os"

	"github.com/rickfay/albw-randomizer/internal/diag"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "dump":
		err = runDump(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unrecognized command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		diag.ShowError(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: albw-rando <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate   shuffle item placement and patch a ROM's romfs")
	fmt.Println("  dump       inspect a single romfs file, optionally as a cpio archive")
	fmt.Println()
	fmt.Println("Run 'albw-rando <command> --help' for the options of a given command.")
}
