// Package world implements WorldGraph (spec.md §4.8): a statically declared
// graph of areas connected by logic-gated paths, each area holding zero or
// more checks that are also logic-gated.
//
// Grounded on the enum-of-named-locations shape in
// original_source/randomizer/src/model/location.rs (one static declaration
// per area, no dynamic graph construction at runtime) and on
// original_source/randomizer/src/filler/alr.rs's check-map iteration
// (spec.md §5: "World-graph iteration order is declaration-order: areas,
// then their checks, then their paths"), generalized here into a Graph
// walked by internal/placement's assumed search.
package world

import (
	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/logic"
)

// Check is a single placeable location, gated by its own Logic.
type Check struct {
	Name     string
	Logic    logic.Logic
	Category item.Category
	Dungeon  string
	Item     item.Item
	Excluded bool
	Patch    PatchTarget
}

// TargetKind identifies how a Check's placed item is physically realized in
// the game data (spec.md §4.10).
type TargetKind int

const (
	// TargetNone is a Check with no physical patch target, e.g. a
	// synthetic or test-only check.
	TargetNone TargetKind = iota
	// TargetSceneObj anchors to a scene's Obj, identified by unq; the
	// item id is written into one of the obj's argument-tuple slots
	// (spec.md §4.10's "look up that obj by (course, scene, unq) and
	// rewrite its arg-tuple").
	TargetSceneObj
	// TargetEventFlow is an event-flagged reward: the item id lives in a
	// FlowGraph Action step's value, optionally paired with a
	// MessageBundle label naming the item in the reward text.
	TargetEventFlow
)

// FileRef locates one file inside a romfs-resident SARC archive.
type FileRef struct {
	Archive string // romfs path of the containing SARC
	File    string // file name within that archive
}

// GateFlag is one extra scene Obj whose active-flag gets repointed at the
// placed item's dungeon-prize event flag, so that maps and NPCs elsewhere in
// the scene gate correctly on whichever prize ended up here (spec.md
// §4.10's "adjust the set of event flags that subsequent scenes read").
type GateFlag struct {
	Scene FileRef
	Unq   uint16
}

// PatchTarget is a Check's physical anchor in the game data.
type PatchTarget struct {
	Kind TargetKind

	// TargetSceneObj fields.
	Scene   FileRef
	Unq     uint16
	ArgSlot int // 0 selects Arg.A0, the conventional item-id slot (see scene.PendantChest)

	// TargetEventFlow fields.
	Flow     FileRef
	FlowStep int
	Msg      FileRef
	MsgLabel string

	// GateFlags applies to either kind: dungeon-prize checks additionally
	// repoint these objects' active flag at the prize's event flag.
	GateFlags []GateFlag
}

// Empty reports whether no item has been placed here yet.
func (c *Check) Empty() bool { return c.Item == item.Empty }

// Path is a one-way edge to another Area, gated by Logic.
type Path struct {
	To    *Area
	Logic logic.Logic
}

// Area is a named region of the graph: its own checks, plus outgoing paths
// to other areas.
type Area struct {
	Name   string
	Checks []*Check
	Paths  []*Path
}

// AddCheck appends a check to this area, in declaration order.
func (a *Area) AddCheck(c *Check) { a.Checks = append(a.Checks, c) }

// AddPath appends an outgoing path from this area, in declaration order.
func (a *Area) AddPath(p *Path) { a.Paths = append(a.Paths, p) }

// Graph is the complete, statically declared WorldGraph: a fixed start area
// plus every area reachable from it, in declaration order.
type Graph struct {
	Start *Area
	Areas []*Area
}

// NewGraph builds a Graph from a start area and every area in the graph
// (including Start), preserving declaration order.
func NewGraph(start *Area, areas ...*Area) *Graph {
	return &Graph{Start: start, Areas: areas}
}

// Checks flattens every check in the graph in declaration order: areas,
// then each area's checks (spec.md §5's iteration-order guarantee).
func (g *Graph) Checks() []*Check {
	var out []*Check
	for _, a := range g.Areas {
		out = append(out, a.Checks...)
	}
	return out
}
