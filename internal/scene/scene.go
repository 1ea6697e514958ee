// Package scene implements SceneModel, the BYAML-backed model of a stage
// (spec.md §4.6, §3): rails, system objects, and gameplay objects, each
// carrying a fixed argument-tuple layout that embeds flag pairs, plus
// intention-revealing setters that hide that layout from callers.
//
// Grounded directly on original_source/jack/src/byaml/stage.rs: the Obj/
// Rail/Point field layout, the Flag tagged-pair encoding, and every
// constructor helper (spawn_point, step_switch, trigger_cube, ...) and
// setter (set_active_flag, enable/disable, redirect, ...) are carried over
// verbatim in meaning, renamed to Go's exported-method idiom.
package scene

import "github.com/rickfay/albw-randomizer/internal/byaml"

// Vec3 and Transform are the scale/rotate/translate triple used throughout
// a stage; reused directly from internal/byaml since they are exactly the
// nine-element transform tuple that package already models.
type Vec3 = byaml.Vec3
type Transform = byaml.Transform

// FlagKind identifies one of the five Flag variants (spec.md §3).
type FlagKind uint8

const (
	FlagReact FlagKind = iota
	FlagSession
	FlagTwo
	FlagCourse
	FlagEvent
)

// Flag is a tagged (kind, value) pair embedded at fixed offsets within an
// Obj's argument tuple or flg tuple.
type Flag struct {
	Kind  FlagKind
	Value uint16
}

// IntoPair returns the (kind, value) encoding used by the argument-tuple
// and flg-tuple layouts.
func (f Flag) IntoPair() (uint8, uint16) { return uint8(f.Kind), f.Value }

// Arg is an Obj's 14-field argument tuple. Positions 4/5 hold the active/
// inactive flag kind bytes, 6/7 their values; 8..12 hold scene-redirect
// targets; 13 is a float parameter used by only a few actors.
type Arg struct {
	A0, A1, A2, A3   int32
	A4, A5           uint8
	A6, A7           uint16
	A8, A9, A10, A11, A12 int32
	A13              float32
}

// Flg is an Obj's enable/disable flag tuple: (enableKind, disableKind,
// enableValue, disableValue).
type Flg struct {
	EnableKind   uint8
	DisableKind  uint8
	EnableValue  uint16
	DisableValue uint16
}

// Lnk is a link entry: (unq, i16, i16).
type Lnk struct {
	Unq    uint16
	A, B   int16
}

// Dest is a redirect destination: scene id, scene index, and spawn point.
type Dest struct {
	Scene       int32
	SceneIndex  int32
	SpawnPoint  int32
}

// Obj is one gameplay or system object placed in a stage.
type Obj struct {
	Arg Arg
	Clp int16
	Flg Flg
	Id  int16
	Lnk []Lnk
	Nme *string
	Ril [][2]int32
	Ser *uint16
	Srt Transform
	Typ int32
	Unq uint16
}

func flagOrZero(flag *Flag) (uint8, uint16) {
	if flag == nil {
		return 0, 0
	}
	return flag.IntoPair()
}

// SetActiveFlag sets the active-flag kind/value pair, clearing both on nil.
func (o *Obj) SetActiveFlag(flag *Flag) {
	o.Arg.A4, o.Arg.A6 = flagOrZero(flag)
}

// SetInactiveFlag sets the inactive-flag kind/value pair, clearing both on nil.
func (o *Obj) SetInactiveFlag(flag *Flag) {
	o.Arg.A5, o.Arg.A7 = flagOrZero(flag)
}

// SetEnableFlag sets flg's enable kind/value pair, clearing both on nil.
func (o *Obj) SetEnableFlag(flag *Flag) {
	k, v := flagOrZero(flag)
	o.Flg.EnableKind, o.Flg.EnableValue = k, v
}

// SetDisableFlag sets flg's disable kind/value pair, clearing both on nil.
func (o *Obj) SetDisableFlag(flag *Flag) {
	k, v := flagOrZero(flag)
	o.Flg.DisableKind, o.Flg.DisableValue = k, v
}

// Enable clears both flg flag pairs, making the object unconditionally active.
func (o *Obj) Enable() {
	o.Flg = Flg{}
}

// Disable sets the disable-flag kind to 4 (Event) and value to 1,
// unconditionally deactivating the object.
func (o *Obj) Disable() {
	o.Flg.DisableKind = 4
	o.Flg.DisableValue = 1
}

// ClearEnableFlag zeroes flg's enable-flag pair.
func (o *Obj) ClearEnableFlag() { o.Flg.EnableKind, o.Flg.EnableValue = 0, 0 }

// ClearDisableFlag zeroes flg's disable-flag pair.
func (o *Obj) ClearDisableFlag() { o.Flg.DisableKind, o.Flg.DisableValue = 0, 0 }

// ClearActiveArgs zeroes the active-flag argument slots.
func (o *Obj) ClearActiveArgs() { o.Arg.A4, o.Arg.A6 = 0, 0 }

// ClearInactiveArgs zeroes the inactive-flag argument slots.
func (o *Obj) ClearInactiveArgs() { o.Arg.A5, o.Arg.A7 = 0, 0 }

// SetId sets the object's id.
func (o *Obj) SetId(id int16) { o.Id = id }

// SetNme sets (or clears) the object's stored name.
func (o *Obj) SetNme(nme *string) { o.Nme = nme }

// SetTyp sets the object's type.
func (o *Obj) SetTyp(typ int32) { o.Typ = typ }

// SetRotate overwrites the rotation component of the transform.
func (o *Obj) SetRotate(x, y, z float32) { o.Srt.Rotate = Vec3{X: x, Y: y, Z: z} }

// SetScale overwrites the scale component of the transform.
func (o *Obj) SetScale(x, y, z float32) { o.Srt.Scale = Vec3{X: x, Y: y, Z: z} }

// AddToTranslate adds to the translation component of the transform.
func (o *Obj) AddToTranslate(x, y, z float32) {
	o.Srt.Translate.X += x
	o.Srt.Translate.Y += y
	o.Srt.Translate.Z += z
}

// SetTranslate overwrites the translation component of the transform.
func (o *Obj) SetTranslate(x, y, z float32) { o.Srt.Translate = Vec3{X: x, Y: y, Z: z} }

// Redirect writes dest's spawn point, scene id, and scene index into the
// documented argument slots (spec.md §4.6). scene_index is stored 1-based
// minus one, matching stage.rs's redirect.
func (o *Obj) Redirect(dest Dest) {
	o.Arg.A0 = dest.SpawnPoint
	o.Arg.A10 = dest.Scene
	o.Arg.A11 = dest.SceneIndex - 1
}

// SpawnPoint builds a new Spawn Point system object.
func SpawnPoint(id int32, clp int16, ser uint16, unq uint16, translate Vec3) Obj {
	return Obj{
		Arg: Arg{A0: id},
		Clp: clp,
		Id:  7,
		Ser: &ser,
		Srt: Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Translate: translate},
		Unq: unq,
	}
}

// StepSwitch builds a new Step Switch object (actor: StepSwitch).
func StepSwitch(flag Flag, clp int16, ser uint16, unq uint16, translate Vec3) Obj {
	a4, a6 := flag.IntoPair()
	return Obj{
		Arg: Arg{A4: a4, A6: a6},
		Clp: clp,
		Id:  109,
		Ser: &ser,
		Srt: Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Translate: translate},
		Typ: 1,
		Unq: unq,
	}
}

// TriggerCube builds a new AreaSwitchCube trigger object.
func TriggerCube(triggerFlag Flag, clp int16, ser uint16, unq uint16, translate Vec3) Obj {
	a4, a6 := triggerFlag.IntoPair()
	invalid := "Invalid"
	return Obj{
		Arg: Arg{A4: a4, A6: a6},
		Clp: clp,
		Id:  14,
		Nme: &invalid,
		Ser: &ser,
		Srt: Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Translate: translate},
		Typ: 6,
		Unq: unq,
	}
}

// HookshotPole builds a new Hookshot Pole object (actor: StatueWood).
func HookshotPole(clp int16, ser uint16, unq uint16, translate Vec3) Obj {
	return Obj{
		Clp: clp,
		Id:  209,
		Ser: &ser,
		Srt: Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Translate: translate},
		Typ: 1,
		Unq: unq,
	}
}

// Raft builds a new Raft object (actor: Raft).
func Raft(clp int16, ser uint16, unq uint16, translate Vec3) Obj {
	return Obj{
		Arg: Arg{A0: 1},
		Clp: clp,
		Id:  247,
		Ser: &ser,
		Srt: Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Translate: translate},
		Typ: 1,
		Unq: unq,
	}
}

func warp(id int16, arg1 int32, activationFlag Flag, clp int16, ser, unq uint16, spawn, sceneID, sceneIndex int32, translate Vec3) Obj {
	a4, a6 := activationFlag.IntoPair()
	return Obj{
		Arg: Arg{A0: spawn, A1: arg1, A4: a4, A6: a6, A10: sceneID, A11: sceneIndex},
		Clp: clp,
		Id:  id,
		Ser: &ser,
		Srt: Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Translate: translate},
		Typ: 6,
		Unq: unq,
	}
}

// WarpTile builds a new Warp Tile object (actor: WarpTile).
func WarpTile(activationFlag Flag, clp int16, ser, unq uint16, spawn, sceneID, sceneIndex int32, translate Vec3) Obj {
	return warp(208, 1, activationFlag, clp, ser, unq, spawn, sceneID, sceneIndex, translate)
}

// BlueWarp builds a new blue warp object.
func BlueWarp(activationFlag Flag, clp int16, ser, unq uint16, spawn, sceneID, sceneIndex int32, translate Vec3) Obj {
	return warp(469, 0, activationFlag, clp, ser, unq, spawn, sceneID, sceneIndex, translate)
}

// GreenWarp builds a new green warp object.
func GreenWarp(activationFlag Flag, clp int16, ser, unq uint16, spawn, sceneID, sceneIndex int32, translate Vec3) Obj {
	return warp(19, 0, activationFlag, clp, ser, unq, spawn, sceneID, sceneIndex, translate)
}

// PendantChest builds a new dungeon-reward trigger object (actor:
// TreasureBoxS). prize is the game's numeric item id for the chest's
// contents.
func PendantChest(prize int32, activeFlag, pendantFlag Flag, clp int16, ser, unq uint16, translate Vec3) Obj {
	a4, a6 := activeFlag.IntoPair()
	a5, a7 := pendantFlag.IntoPair()
	return Obj{
		Arg: Arg{A0: prize, A4: a4, A5: a5, A6: a6, A7: a7},
		Clp: clp,
		Id:  35,
		Ser: &ser,
		Srt: Transform{Scale: Vec3{X: 1, Y: 1, Z: 1}, Translate: translate},
		Typ: 1,
		Unq: unq,
	}
}

// RailArg is the six-field tuple carried by Rail and Point (four ints, two
// floats).
type RailArg struct {
	A0, A1, A2, A3 int32
	A4, A5         float32
}

// Point is one control point of a Rail.
type Point struct {
	Arg RailArg
	Ctl [6]float32
	Lnk []Lnk
	Srt Transform
}

// Rail is a guided path, referenced by Obj.Ril entries.
type Rail struct {
	Arg RailArg
	Pnt []Point
	Rng bool
	Unq uint16
}

// Stage is a full scene: its rails, system objects, and gameplay objects.
type Stage struct {
	Rails  []Rail
	System []Obj
	Objs   []Obj
}

// AddObj appends a gameplay object.
func (s *Stage) AddObj(obj Obj) { s.Objs = append(s.Objs, obj) }

// AddRail appends a rail.
func (s *Stage) AddRail(rail Rail) { s.Rails = append(s.Rails, rail) }

// AddSystem appends a system object.
func (s *Stage) AddSystem(obj Obj) { s.System = append(s.System, obj) }

// GetObjMut returns a pointer to the gameplay object with the given unq, by
// linear search.
func (s *Stage) GetObjMut(unq uint16) (*Obj, bool) {
	for i := range s.Objs {
		if s.Objs[i].Unq == unq {
			return &s.Objs[i], true
		}
	}
	return nil, false
}

// GetRailMut returns a pointer to the rail with the given unq, by linear search.
func (s *Stage) GetRailMut(unq uint16) (*Rail, bool) {
	for i := range s.Rails {
		if s.Rails[i].Unq == unq {
			return &s.Rails[i], true
		}
	}
	return nil, false
}

// GetSystemMut returns a pointer to the system object with the given unq, by
// linear search.
func (s *Stage) GetSystemMut(unq uint16) (*Obj, bool) {
	for i := range s.System {
		if s.System[i].Unq == unq {
			return &s.System[i], true
		}
	}
	return nil, false
}
