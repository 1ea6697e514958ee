package cutscene

import "testing"

func TestTryReadRejectsMissingFinish(t *testing.T) {
	_, err := TryRead([]byte("-1,comment\n0,Other\n"))
	if err == nil {
		t.Fatal("expected EmptyOrUnterminated error for input with no trailing Finish")
	}
}

func TestTryReadFinishOnly(t *testing.T) {
	d, err := TryRead([]byte("0,Finish,0,1,2\n"))
	if err != nil {
		t.Fatalf("TryRead: %v", err)
	}
	if len(d.Commands()) != 0 {
		t.Fatalf("expected no ordinary commands, got %d", len(d.Commands()))
	}
	finish := d.FinishMut()
	if finish.Command.Kind != KindFinish {
		t.Fatalf("expected Finish command, got kind %v", finish.Command.Kind)
	}
	if finish.Command.Course != 0 || finish.Command.Scene != 1 || finish.Command.Index != 2 {
		t.Fatalf("Finish fields mismatch: %+v", finish.Command)
	}
}

func TestTryReadSetEventFlagAndOther(t *testing.T) {
	d, err := TryRead([]byte("0,SetEventFlag,7\n5,SomeCommand,a,b\n10,Finish,1,2,3\n"))
	if err != nil {
		t.Fatalf("TryRead: %v", err)
	}
	cmds := d.Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 ordinary commands, got %d", len(cmds))
	}
	if cmds[0].Command.Kind != KindSetEventFlag || cmds[0].Command.Flag != 7 {
		t.Fatalf("command[0] mismatch: %+v", cmds[0])
	}
	if cmds[1].Command.Kind != KindOther || cmds[1].Command.Name != "SomeCommand" {
		t.Fatalf("command[1] mismatch: %+v", cmds[1])
	}
	if len(cmds[1].Command.Args) != 2 || cmds[1].Command.Args[0] != "a" || cmds[1].Command.Args[1] != "b" {
		t.Fatalf("command[1] args mismatch: %+v", cmds[1].Command.Args)
	}
}

func TestAddEventFlagPrepends(t *testing.T) {
	d, err := TryRead([]byte("0,Finish,0,0,0\n"))
	if err != nil {
		t.Fatalf("TryRead: %v", err)
	}
	d.AddEventFlag(42)
	cmds := d.Commands()
	if len(cmds) != 1 || cmds[0].Command.Kind != KindSetEventFlag || cmds[0].Command.Flag != 42 {
		t.Fatalf("AddEventFlag did not prepend correctly: %+v", cmds)
	}
	if cmds[0].Timestamp != 0 {
		t.Fatalf("expected timestamp 0, got %d", cmds[0].Timestamp)
	}
}

func TestRetainFilters(t *testing.T) {
	d, err := TryRead([]byte("0,SetEventFlag,1\n1,SetEventFlag,2\n2,Finish,0,0,0\n"))
	if err != nil {
		t.Fatalf("TryRead: %v", err)
	}
	d.Retain(func(t Timed) bool { return t.Command.Flag != 1 })
	cmds := d.Commands()
	if len(cmds) != 1 || cmds[0].Command.Flag != 2 {
		t.Fatalf("Retain did not filter correctly: %+v", cmds)
	}
}

func TestRoundTrip(t *testing.T) {
	original := []byte("0,SetEventFlag,7\n5,Custom,a,b\n10,Finish,1,2,3\n")
	d, err := TryRead(original)
	if err != nil {
		t.Fatalf("TryRead: %v", err)
	}
	out, err := d.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	reparsed, err := TryRead(out)
	if err != nil {
		t.Fatalf("TryRead(round trip): %v", err)
	}
	if len(reparsed.Commands()) != len(d.Commands()) {
		t.Fatalf("round trip command count mismatch: %d vs %d", len(reparsed.Commands()), len(d.Commands()))
	}
	gotFinish, wantFinish := reparsed.FinishMut().Command, d.FinishMut().Command
	if gotFinish.Kind != wantFinish.Kind || gotFinish.Course != wantFinish.Course ||
		gotFinish.Scene != wantFinish.Scene || gotFinish.Index != wantFinish.Index {
		t.Fatalf("round trip finish mismatch: %+v vs %+v", gotFinish, wantFinish)
	}
}

func TestFinishMutEditsInPlace(t *testing.T) {
	d, err := TryRead([]byte("0,Finish,0,0,0\n"))
	if err != nil {
		t.Fatalf("TryRead: %v", err)
	}
	d.FinishMut().Command.Scene = 9
	if d.FinishMut().Command.Scene != 9 {
		t.Fatalf("FinishMut edit did not persist")
	}
}
