package flow

import "testing"

// buildFixture assembles a minimal FLW3 payload with one Branch step
// (count=3, branch=5) followed by a branch table long enough to hold
// indices 5..8, matching scenario S3.
func buildFixture() []byte {
	stepCount := uint16(1)
	branchCount := uint16(8)

	buf := make([]byte, subHeaderLen+int(stepCount)*stepLen+int(branchCount)*2)
	buf[0] = byte(stepCount)
	buf[1] = byte(stepCount >> 8)
	buf[2] = byte(branchCount)
	buf[3] = byte(branchCount >> 8)

	stepOff := subHeaderLen
	buf[stepOff] = byte(KindBranch)
	// value(4) at +4, next(2) at +8, command(2) at +10
	putU16 := func(off int, v uint16) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
	}
	putU16(stepOff+12, 3) // count
	putU16(stepOff+14, 5) // branch

	branchTableOff := subHeaderLen + int(stepCount)*stepLen
	for i, v := range []uint16{10, 11, 12, 13, 14, 20, 21, 22} {
		putU16(branchTableOff+i*2, v)
	}
	return buf
}

func TestBranchesAndSetBranch(t *testing.T) {
	g, err := Parse(buildFixture())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	branches, err := g.Branches(0)
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 3 || branches[0] != 20 || branches[1] != 21 || branches[2] != 22 {
		t.Fatalf("unexpected branches: %v", branches)
	}

	if err := g.SetBranch(0, 1, -1); err != nil {
		t.Fatalf("SetBranch: %v", err)
	}
	branches, err = g.Branches(0)
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if branches[1] != -1 {
		t.Fatalf("expected no-successor at slot 1, got %d", branches[1])
	}

	if err := g.SetBranch(0, 3, 99); err == nil {
		t.Fatal("expected InvalidBranchIndex-style error for k >= count")
	}
}

func TestStepCountPreservedAfterMutation(t *testing.T) {
	g, err := Parse(buildFixture())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	before := g.StepCount()
	if err := g.SetBranch(0, 0, 42); err != nil {
		t.Fatalf("SetBranch: %v", err)
	}
	if g.StepCount() != before {
		t.Fatalf("step count changed: %d -> %d", before, g.StepCount())
	}
}

func TestUnrecognizedKindRejected(t *testing.T) {
	buf := buildFixture()
	buf[subHeaderLen] = 9 // invalid kind
	if _, err := Parse(buf); err == nil {
		t.Fatal("expected error for unrecognized step kind")
	}
}
