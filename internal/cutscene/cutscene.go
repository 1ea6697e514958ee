// Package cutscene implements CutsceneTable (spec.md §4.7): a flexible,
// headerless CSV of timed commands with a mandatory terminating Finish row.
//
// Grounded directly on original_source/albw/src/demo.rs: the comment-row
// convention (negative timestamp), the Finish/SetEventFlag/Other command
// split, and the mutation surface (add_event_flag, retain, finish_mut) are
// carried over unchanged in meaning. Uses encoding/csv with FieldsPerRecord
// disabled, the same way demo.rs configures its csv::Reader/Writer as
// `.flexible(true)` — no example repo in the pack imports a third-party CSV
// library, and encoding/csv covers this flat, ragged-row format directly.
package cutscene

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// Kind identifies which of the three recognized command shapes a Command
// holds.
type Kind int

const (
	KindFinish Kind = iota
	KindSetEventFlag
	KindOther
)

// Command is a single cutscene row's payload after the timestamp column.
// Finish uses Course/Scene/Index; SetEventFlag uses Flag; any other command
// name is preserved byte-for-byte in Name/Args.
type Command struct {
	Kind   Kind
	Course uint16
	Scene  uint16
	Index  uint16
	Flag   uint16
	Name   string
	Args   []string
}

// Timed pairs a Command with its millisecond (or frame) timestamp.
type Timed struct {
	Timestamp int
	Command   Command
}

// NewTimed wraps a command at timestamp 0.
func NewTimed(cmd Command) Timed {
	return Timed{Timestamp: 0, Command: cmd}
}

// Demo is a parsed cutscene: its ordinary commands plus the dedicated
// terminating Finish.
type Demo struct {
	commands []Timed
	finish   Timed
}

// TryRead parses a CutsceneTable CSV. The last non-comment row must be a
// Finish command; otherwise it fails with EmptyOrUnterminated.
func TryRead(data []byte) (*Demo, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var rows []Timed
	for {
		record, err := r.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, xerrors.BadFormat("cutscene.TryRead", "malformed CSV row: "+err.Error())
		}
		if len(record) == 0 {
			continue
		}
		timestamp, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, xerrors.BadFormat("cutscene.TryRead", "non-numeric timestamp: "+record[0])
		}
		if timestamp < 0 {
			continue // comment row
		}
		if len(record) < 2 {
			return nil, xerrors.BadFormat("cutscene.TryRead", "row missing a command name")
		}
		cmd, err := parseCommand(record[1], record[2:])
		if err != nil {
			return nil, err
		}
		rows = append(rows, Timed{Timestamp: timestamp, Command: cmd})
	}

	if len(rows) == 0 {
		return nil, xerrors.BadFormat("cutscene.TryRead", "EmptyOrUnterminated: no rows")
	}
	last := rows[len(rows)-1]
	if last.Command.Kind != KindFinish {
		return nil, xerrors.BadFormat("cutscene.TryRead", "EmptyOrUnterminated: last row is not Finish")
	}
	return &Demo{commands: rows[:len(rows)-1], finish: last}, nil
}

func parseCommand(name string, rest []string) (Command, error) {
	switch name {
	case "Finish":
		if len(rest) < 3 {
			return Command{}, xerrors.BadFormat("cutscene.parseCommand", "Finish: missing course/scene/index")
		}
		course, err := parseU16(rest[0])
		if err != nil {
			return Command{}, err
		}
		scene, err := parseU16(rest[1])
		if err != nil {
			return Command{}, err
		}
		index, err := parseU16(rest[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindFinish, Course: course, Scene: scene, Index: index}, nil
	case "SetEventFlag":
		if len(rest) < 1 {
			return Command{}, xerrors.BadFormat("cutscene.parseCommand", "SetEventFlag: missing flag")
		}
		flag, err := parseU16(rest[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindSetEventFlag, Flag: flag}, nil
	default:
		args := append([]string(nil), rest...)
		return Command{Kind: KindOther, Name: name, Args: args}, nil
	}
}

func parseU16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, xerrors.BadFormat("cutscene.parseU16", "expected an unsigned 16-bit field: "+s)
	}
	return uint16(v), nil
}

// AddEventFlag prepends a timestamp-0 SetEventFlag command.
func (d *Demo) AddEventFlag(flag uint16) {
	d.commands = append([]Timed{NewTimed(Command{Kind: KindSetEventFlag, Flag: flag})}, d.commands...)
}

// Retain keeps only the commands for which keep returns true.
func (d *Demo) Retain(keep func(Timed) bool) {
	out := d.commands[:0]
	for _, c := range d.commands {
		if keep(c) {
			out = append(out, c)
		}
	}
	d.commands = out
}

// FinishMut returns a pointer to the terminal Finish command for editing.
func (d *Demo) FinishMut() *Timed { return &d.finish }

// Commands returns the ordinary (non-Finish) commands in order.
func (d *Demo) Commands() []Timed { return d.commands }

// ToBytes serializes the commands back to CSV, followed by the Finish as an
// ordinary timed row.
func (d *Demo) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, t := range append(append([]Timed(nil), d.commands...), d.finish) {
		record, err := commandRecord(t)
		if err != nil {
			return nil, err
		}
		if err := w.Write(record); err != nil {
			return nil, xerrors.IO("cutscene.ToBytes", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, xerrors.IO("cutscene.ToBytes", err)
	}
	return buf.Bytes(), nil
}

func commandRecord(t Timed) ([]string, error) {
	ts := strconv.Itoa(t.Timestamp)
	switch t.Command.Kind {
	case KindFinish:
		return []string{
			ts, "Finish",
			strconv.Itoa(int(t.Command.Course)),
			strconv.Itoa(int(t.Command.Scene)),
			strconv.Itoa(int(t.Command.Index)),
		}, nil
	case KindSetEventFlag:
		return []string{ts, "SetEventFlag", strconv.Itoa(int(t.Command.Flag))}, nil
	case KindOther:
		record := append([]string{ts, t.Command.Name}, t.Command.Args...)
		return record, nil
	default:
		return nil, xerrors.Unsupported("cutscene.commandRecord", "unrecognized command kind")
	}
}
