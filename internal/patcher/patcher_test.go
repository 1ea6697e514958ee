package patcher

import (
	"testing"

	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/logic"
	"github.com/rickfay/albw-randomizer/internal/msgbn"
	"github.com/rickfay/albw-randomizer/internal/sarc"
	"github.com/rickfay/albw-randomizer/internal/scene"
	"github.com/rickfay/albw-randomizer/internal/world"
)

// fakeRomFs is an in-memory stand-in for *rom.RomFs, keyed by romfs path.
type fakeRomFs struct {
	files map[string][]byte
}

func (f *fakeRomFs) ReadFile(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, xerrorsNotFound(path)
	}
	return data, nil
}

type notFoundErr string

func (e notFoundErr) Error() string { return "not found: " + string(e) }
func xerrorsNotFound(path string) error { return notFoundErr(path) }

func le32(v uint32) []byte { return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)} }
func le16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }

// buildFlw3 assembles a minimal FLW3 payload: one Action step, no branches.
func buildFlw3(actionValue uint32, command uint16) []byte {
	var buf []byte
	buf = append(buf, le16(1)...) // stepCount
	buf = append(buf, le16(0)...) // branchCount
	buf = append(buf, make([]byte, 12)...)

	buf = append(buf, 3, 0, 0, 0) // kind=Action, reserved
	buf = append(buf, le32(actionValue)...)
	buf = append(buf, le16(0xFFFF)...) // next
	buf = append(buf, le16(command)...)
	buf = append(buf, le16(0)...) // count
	buf = append(buf, le16(0)...) // branch
	return buf
}

// buildMsgSections assembles minimal LBL1/ATR1/TXT2 payloads holding a
// single label bound to a single message.
func buildMsgSections(label, text string) (lbl1, atr1, txt2 []byte) {
	lbl1 = append(lbl1, le32(1)...)           // slots = 1
	lbl1 = append(lbl1, le32(8)...)           // slot 0 -> entry at offset 8
	lbl1 = append(lbl1, byte(len(label)))     // nameLen
	lbl1 = append(lbl1, []byte(label)...)     // name
	lbl1 = append(lbl1, le32(0)...)           // msgIdx
	lbl1 = append(lbl1, le32(0xFFFFFFFF)...)  // next (end of bucket)

	atr1 = append(atr1, le32(1)...) // count = 1, zero-length rows

	var body []byte
	for _, r := range text {
		body = append(body, byte(r), 0)
	}
	body = append(body, 0, 0) // NUL terminator
	txt2 = append(txt2, le32(1)...)    // count = 1
	txt2 = append(txt2, le32(8)...)    // offset of the one message
	txt2 = append(txt2, body...)
	return lbl1, atr1, txt2
}

func buildSceneArchive(t *testing.T, unq uint16) (*fakeRomFs, string, string) {
	t.Helper()
	stage := &scene.Stage{}
	stage.AddObj(scene.PendantChest(0, scene.Flag{}, scene.Flag{}, 1, 500, unq, scene.Vec3{}))

	arc := sarc.New()
	if err := arc.Create("Stage.byaml", scene.Encode(stage), false); err != nil {
		t.Fatalf("Create: %v", err)
	}

	romfs := &fakeRomFs{files: map[string][]byte{"World/EP_1F.sarc": arc.ToBytes()}}
	return romfs, "World/EP_1F.sarc", "Stage.byaml"
}

func TestApplySceneObjRewritesChestItemID(t *testing.T) {
	romfs, archivePath, file := buildSceneArchive(t, 42)

	area := &world.Area{Name: "Start"}
	g := world.NewGraph(area, area)
	g.Areas[0].AddCheck(&world.Check{
		Name:  "Eastern Palace Chest",
		Logic: logic.Free(),
		Item:  item.Bow,
		Patch: world.PatchTarget{
			Kind:  world.TargetSceneObj,
			Scene: world.FileRef{Archive: archivePath, File: file},
			Unq:   42,
		},
	})

	out, err := Apply(romfs, g)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	patched, ok := out[archivePath]
	if !ok {
		t.Fatalf("expected %q to be rewritten", archivePath)
	}

	arc, err := sarc.Open(patched)
	if err != nil {
		t.Fatalf("reopening patched archive: %v", err)
	}
	data, err := arc.Read(file)
	if err != nil {
		t.Fatalf("reading patched stage: %v", err)
	}
	stage, err := scene.Decode(data)
	if err != nil {
		t.Fatalf("decoding patched stage: %v", err)
	}
	obj, ok := stage.GetObjMut(42)
	if !ok {
		t.Fatal("obj 42 missing after patch")
	}
	wantID, _ := item.ID(item.Bow)
	if obj.Arg.A0 != int32(wantID) {
		t.Fatalf("Arg.A0 = %d, want %d", obj.Arg.A0, wantID)
	}
}

func TestApplySceneObjSetsGateFlagOnDungeonPrize(t *testing.T) {
	romfs, archivePath, file := buildSceneArchive(t, 7)
	stage, err := (func() (*scene.Stage, error) {
		data, _ := romfs.ReadFile(archivePath)
		arc, err := sarc.Open(data)
		if err != nil {
			return nil, err
		}
		raw, err := arc.Read(file)
		if err != nil {
			return nil, err
		}
		s, err := scene.Decode(raw)
		if err != nil {
			return nil, err
		}
		s.AddObj(scene.StepSwitch(scene.Flag{}, 1, 501, 8, scene.Vec3{}))
		return s, nil
	})()
	if err != nil {
		t.Fatalf("seeding gate obj: %v", err)
	}
	arc := sarc.New()
	if err := arc.Create(file, scene.Encode(stage), false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	romfs.files[archivePath] = arc.ToBytes()

	area := &world.Area{Name: "Start"}
	g := world.NewGraph(area, area)
	g.Areas[0].AddCheck(&world.Check{
		Name:     "Eastern Palace Prize",
		Logic:    logic.Free(),
		Category: item.CategoryDungeonPrize,
		Item:     item.PendantOfPower,
		Patch: world.PatchTarget{
			Kind:  world.TargetSceneObj,
			Scene: world.FileRef{Archive: archivePath, File: file},
			Unq:   7,
			GateFlags: []world.GateFlag{
				{Scene: world.FileRef{Archive: archivePath, File: file}, Unq: 8},
			},
		},
	})

	out, err := Apply(romfs, g)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	patched := out[archivePath]
	arc2, _ := sarc.Open(patched)
	raw, _ := arc2.Read(file)
	s2, err := scene.Decode(raw)
	if err != nil {
		t.Fatalf("decoding patched stage: %v", err)
	}
	gate, ok := s2.GetObjMut(8)
	if !ok {
		t.Fatal("gate obj missing")
	}
	wantFlag, _ := item.PrizeEventFlag(item.PendantOfPower)
	if gate.Arg.A4 != uint8(scene.FlagEvent) || gate.Arg.A6 != wantFlag {
		t.Fatalf("gate obj active flag = (%d,%d), want (%d,%d)", gate.Arg.A4, gate.Arg.A6, uint8(scene.FlagEvent), wantFlag)
	}
}

func TestApplyEventFlowRewritesActionValueAndMessage(t *testing.T) {
	flowBundle := msgbn.Bundle{
		Magic:    flowMagic,
		Encoding: msgbn.EncodingUTF16,
		Sections: []msgbn.Section{{Magic: "FLW3", Payload: buildFlw3(0x1234, 7)}},
	}
	lbl1, atr1, txt2 := buildMsgSections("Reward", "X")
	msgBundle := msgbn.Bundle{
		Magic:    msgMagic,
		Encoding: msgbn.EncodingUTF16,
		Sections: []msgbn.Section{
			{Magic: "LBL1", Payload: lbl1},
			{Magic: "ATR1", Payload: atr1},
			{Magic: "TXT2", Payload: txt2},
		},
	}

	arc := sarc.New()
	if err := arc.Create("EventFlow.bin", flowBundle.ToBytes(), false); err != nil {
		t.Fatalf("Create flow: %v", err)
	}
	if err := arc.Create("EventMsg.bin", msgBundle.ToBytes(), false); err != nil {
		t.Fatalf("Create msg: %v", err)
	}
	romfs := &fakeRomFs{files: map[string][]byte{"Event/Reward.sarc": arc.ToBytes()}}

	area := &world.Area{Name: "Start"}
	g := world.NewGraph(area, area)
	g.Areas[0].AddCheck(&world.Check{
		Name:  "Letter Reward",
		Logic: logic.Free(),
		Item:  item.Hammer,
		Patch: world.PatchTarget{
			Kind:     world.TargetEventFlow,
			Flow:     world.FileRef{Archive: "Event/Reward.sarc", File: "EventFlow.bin"},
			FlowStep: 0,
			Msg:      world.FileRef{Archive: "Event/Reward.sarc", File: "EventMsg.bin"},
			MsgLabel: "Reward",
		},
	})

	out, err := Apply(romfs, g)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	patched, ok := out["Event/Reward.sarc"]
	if !ok {
		t.Fatal("expected the event archive to be rewritten")
	}
	arc2, err := sarc.Open(patched)
	if err != nil {
		t.Fatalf("reopening patched archive: %v", err)
	}

	flowRaw, err := arc2.Read("EventFlow.bin")
	if err != nil {
		t.Fatalf("reading patched flow: %v", err)
	}
	fb, err := msgbn.Parse(flowRaw, flowMagic)
	if err != nil {
		t.Fatalf("parsing patched flow bundle: %v", err)
	}
	sec, ok := fb.Section("FLW3")
	if !ok {
		t.Fatal("FLW3 section missing")
	}
	step, err := parseFlowStepForTest(sec.Payload)
	if err != nil {
		t.Fatalf("parsing step: %v", err)
	}
	wantID, _ := item.ID(item.Hammer)
	if step != uint32(wantID) {
		t.Fatalf("action value = %d, want %d", step, wantID)
	}
}

// parseFlowStepForTest reads back step 0's value field directly, avoiding a
// second dependency on the flow package's own parsing in this test.
func parseFlowStepForTest(payload []byte) (uint32, error) {
	off := 16 // subheader
	v := uint32(payload[off+4]) | uint32(payload[off+5])<<8 | uint32(payload[off+6])<<16 | uint32(payload[off+7])<<24
	return v, nil
}
