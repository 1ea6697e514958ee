// Package diag implements the CLI diagnostic surface spec.md §7 asks for
// ("The CLI prints a single diagnostic line per error"): one ANSI-colored
// line per error, plus an optional verbose stage-timing trace for the
// orchestrator's longer pipeline.
//
// Grounded directly on the teacher's main.go showError (same "\x1b[31m..."
// bold-red "!!" prefix), extended with a Trace type for -v/--verbose output
// since the orchestrator has many more pipeline stages than a package build
// and the teacher has no equivalent progress-reporting need.
package diag

import (
	"fmt"
	"io"
	"log"
	"time"
)

// ShowError prints a single bold-red diagnostic line to w, the same shape
// as the teacher's showError.
func ShowError(w io.Writer, err error) {
	fmt.Fprintf(w, "\x1b[31m\x1b[1m!!\x1b[0m %s\n", err.Error())
}

// Trace is an optional verbose progress logger: each Stage call records how
// long the previous stage took and names the next one.
type Trace struct {
	enabled bool
	logger  *log.Logger
	started time.Time
	stage   string
}

// NewTrace builds a Trace. If enabled is false, Stage and Done are no-ops.
func NewTrace(w io.Writer, enabled bool) *Trace {
	return &Trace{enabled: enabled, logger: log.New(w, "", log.Ltime)}
}

// Stage announces the start of a new pipeline stage, logging the prior
// stage's elapsed time first if one was in progress.
func (t *Trace) Stage(name string) {
	if !t.enabled {
		return
	}
	now := time.Now()
	if t.stage != "" {
		t.logger.Printf("%s: %s", t.stage, now.Sub(t.started))
	}
	t.stage = name
	t.started = now
}

// Done logs the final stage's elapsed time.
func (t *Trace) Done() {
	if !t.enabled || t.stage == "" {
		return
	}
	t.logger.Printf("%s: %s", t.stage, time.Since(t.started))
	t.stage = ""
}
