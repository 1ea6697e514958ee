// Package flow implements the typed view over a flow bundle's FLW3 section
// (spec.md §4.4, §3): a fixed 16-byte sub-header (step count, branch count),
// an array of 16-byte steps, and an array of 2-byte branch targets. Steps
// are exposed as typed values (Text/Branch/Action/Start/Goto); mutation
// primitives rewrite individual step fields or branch-table slots without
// ever changing the step count or branch-table length.
//
// Grounded on internal/view's bounds-checked accessor idiom (itself grounded
// on the teacher's fixed-struct binary.Read/Write style), generalized here
// to an indexed array of fixed-size records rather than one top-level
// struct — the same step internal/sarc and internal/msgbn take from
// "one struct" to "an array of structs."
package flow

import (
	"github.com/rickfay/albw-randomizer/internal/view"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

const (
	subHeaderLen = 16
	stepLen      = 16
	noSuccessor  = 0xFFFF
)

// Kind identifies a step's role. Values outside the five declared kinds are
// rejected at parse time (spec.md §3).
type Kind uint8

const (
	KindText   Kind = 1
	KindBranch Kind = 2
	KindAction Kind = 3
	KindStart  Kind = 4
	KindGoto   Kind = 5
)

func (k Kind) valid() bool {
	return k >= KindText && k <= KindGoto
}

// Step is one 16-byte flow-graph entry: {kind:u8, _:3, value:u32, next:u16,
// command:u16, count:u16, branch:u16}.
type Step struct {
	Kind    Kind
	Value   uint32
	Next    uint16
	Command uint16
	Count   uint16
	Branch  uint16
}

// Graph is a mutable view over an FLW3 payload: a fixed-length steps array
// and a fixed-length branch-target array. The byte count of both never
// changes after Parse; only field values within a step, and slots within
// the branch table, are ever rewritten.
type Graph struct {
	buf         []byte
	stepCount   uint16
	branchCount uint16
}

// Parse reads an FLW3 section payload (the bytes inside the MsgBn section,
// not including the MsgBn section header).
func Parse(payload []byte) (*Graph, error) {
	v := view.New("flow.subheader", payload)
	stepCount, err := v.U16LE(0)
	if err != nil {
		return nil, err
	}
	branchCount, err := v.U16LE(2)
	if err != nil {
		return nil, err
	}

	stepsLen := int(stepCount) * stepLen
	branchLen := int(branchCount) * 2
	need := subHeaderLen + stepsLen + branchLen
	if len(payload) < need {
		return nil, xerrors.Truncated("flow.body", subHeaderLen, stepsLen+branchLen, len(payload)-subHeaderLen)
	}

	for i := 0; i < int(stepCount); i++ {
		kind := Kind(payload[subHeaderLen+i*stepLen])
		if !kind.valid() {
			return nil, xerrors.BadFormat("flow.step", "unrecognized step kind")
		}
	}

	buf := make([]byte, need)
	copy(buf, payload[:need])
	return &Graph{buf: buf, stepCount: stepCount, branchCount: branchCount}, nil
}

// ToBytes re-serializes the graph, including the sub-header.
func (g *Graph) ToBytes() []byte {
	out := make([]byte, len(g.buf))
	copy(out, g.buf)
	return out
}

// StepCount returns the fixed number of steps.
func (g *Graph) StepCount() int { return int(g.stepCount) }

func (g *Graph) stepOffset(i int) (int, error) {
	if i < 0 || i >= int(g.stepCount) {
		return 0, xerrors.BadFormat("flow.step", "index out of range")
	}
	return subHeaderLen + i*stepLen, nil
}

// Step returns the typed step at index i.
func (g *Graph) Step(i int) (Step, error) {
	off, err := g.stepOffset(i)
	if err != nil {
		return Step{}, err
	}
	v := view.New("flow.step", g.buf[off:off+stepLen])
	kindByte, _ := v.U8(0)
	kind := Kind(kindByte)
	if !kind.valid() {
		return Step{}, xerrors.BadFormat("flow.step", "unrecognized step kind")
	}
	value, _ := v.U32LE(4)
	next, _ := v.U16LE(8)
	command, _ := v.U16LE(10)
	count, _ := v.U16LE(12)
	branch, _ := v.U16LE(14)
	return Step{Kind: kind, Value: value, Next: next, Command: command, Count: count, Branch: branch}, nil
}

// Steps returns every step in declared order.
func (g *Graph) Steps() ([]Step, error) {
	out := make([]Step, g.stepCount)
	for i := range out {
		s, err := g.Step(i)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Branches returns the count successor indices for a Branch step, with raw
// 0xFFFF entries mapped to -1 ("no successor").
func (g *Graph) Branches(i int) ([]int, error) {
	s, err := g.Step(i)
	if err != nil {
		return nil, err
	}
	if s.Kind != KindBranch {
		return nil, xerrors.BadFormat("flow.branches", "step is not a Branch")
	}
	branchTableOff := subHeaderLen + int(g.stepCount)*stepLen
	out := make([]int, s.Count)
	for k := 0; k < int(s.Count); k++ {
		off := branchTableOff + (int(s.Branch)+k)*2
		if off+2 > len(g.buf) {
			return nil, xerrors.BadFormat("flow.branches", "branch slot out of range")
		}
		raw := uint16(g.buf[off]) | uint16(g.buf[off+1])<<8
		if raw == noSuccessor {
			out[k] = -1
		} else {
			out[k] = int(raw)
		}
	}
	return out, nil
}

func (g *Graph) setStepField(i, off int, v uint16) error {
	so, err := g.stepOffset(i)
	if err != nil {
		return err
	}
	g.buf[so+off] = byte(v)
	g.buf[so+off+1] = byte(v >> 8)
	return nil
}

func (g *Graph) setStepU32(i, off int, v uint32) error {
	so, err := g.stepOffset(i)
	if err != nil {
		return err
	}
	g.buf[so+off] = byte(v)
	g.buf[so+off+1] = byte(v >> 8)
	g.buf[so+off+2] = byte(v >> 16)
	g.buf[so+off+3] = byte(v >> 24)
	return nil
}

// SetBranch sets the k-th branch target of step i to `to` (or -1 for "no
// successor", encoded as 0xFFFF). Fails if k is outside the step's declared
// branch count, per spec.md §4.4.
func (g *Graph) SetBranch(i, k, to int) error {
	s, err := g.Step(i)
	if err != nil {
		return err
	}
	if s.Kind != KindBranch {
		return xerrors.BadFormat("flow.SetBranch", "step is not a Branch")
	}
	if k < 0 || k >= int(s.Count) {
		return xerrors.BadFormat("flow.SetBranch", "branch slot index out of range")
	}
	raw := uint16(noSuccessor)
	if to >= 0 {
		raw = uint16(to)
	}
	branchTableOff := subHeaderLen + int(g.stepCount)*stepLen
	off := branchTableOff + (int(s.Branch)+k)*2
	if off+2 > len(g.buf) {
		return xerrors.BadFormat("flow.SetBranch", "branch slot out of range")
	}
	g.buf[off] = byte(raw)
	g.buf[off+1] = byte(raw >> 8)
	return nil
}

// SetActionKind sets step i's command field, asserting it is already an
// Action step.
func (g *Graph) SetActionKind(i int, command uint16) error {
	s, err := g.Step(i)
	if err != nil {
		return err
	}
	if s.Kind != KindAction {
		return xerrors.BadFormat("flow.SetActionKind", "step is not an Action")
	}
	return g.setStepField(i, 10, command)
}

// SetActionValue sets step i's value field, asserting it is an Action step.
func (g *Graph) SetActionValue(i int, value uint32) error {
	s, err := g.Step(i)
	if err != nil {
		return err
	}
	if s.Kind != KindAction {
		return xerrors.BadFormat("flow.SetActionValue", "step is not an Action")
	}
	return g.setStepU32(i, 4, value)
}

// SetActionNext sets step i's next field, asserting it is an Action step.
func (g *Graph) SetActionNext(i int, next uint16) error {
	s, err := g.Step(i)
	if err != nil {
		return err
	}
	if s.Kind != KindAction {
		return xerrors.BadFormat("flow.SetActionNext", "step is not an Action")
	}
	return g.setStepField(i, 8, next)
}

// SetStartNext sets step i's next field, asserting it is a Start step.
func (g *Graph) SetStartNext(i int, next uint16) error {
	s, err := g.Step(i)
	if err != nil {
		return err
	}
	if s.Kind != KindStart {
		return xerrors.BadFormat("flow.SetStartNext", "step is not a Start")
	}
	return g.setStepField(i, 8, next)
}

// SetGotoNext sets step i's next field, asserting it is a Goto step.
func (g *Graph) SetGotoNext(i int, next uint16) error {
	s, err := g.Step(i)
	if err != nil {
		return err
	}
	if s.Kind != KindGoto {
		return xerrors.BadFormat("flow.SetGotoNext", "step is not a Goto")
	}
	return g.setStepField(i, 8, next)
}

// ConvertIntoAction repurposes the step at i as an Action, preserving the
// storage slot (index never changes). Callers are responsible for following
// up with SetActionKind/SetActionValue/SetActionNext.
func (g *Graph) ConvertIntoAction(i int) error {
	off, err := g.stepOffset(i)
	if err != nil {
		return err
	}
	g.buf[off] = byte(KindAction)
	return nil
}
