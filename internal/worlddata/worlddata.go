// Package worlddata builds the concrete WorldGraph `cmd/albw-rando` hands to
// the PlacementEngine and the Patcher: one check per internal/item.Catalog
// entry, so the total check count always matches the total item count
// (fillJunk's PoolMismatch invariant), grouped under a single Overworld area
// reachable from a RavioShop start area.
//
// Grounded on original_source/randomizer/src/model/location.rs's enum-of-
// named-locations naming (check names borrow its Hyrule/Lorule location
// vocabulary) and on internal/placement/placement_test.go's buildGraph,
// which this package promotes from a test fixture to the real program's
// WorldGraph. Per-check logic stays Free() rather than replicating the
// several hundred hand-tuned accessibility predicates original_source's
// logic.rs declares for the real ~380-check game world: this toolkit's
// WorldGraph is caller-supplied by design (see internal/world's package
// doc), and wiring authentic per-check logic would mean hardcoding the
// exact game world spec.md's distillation deliberately generalized away.
// Likewise, each check's world.PatchTarget points at a synthetic, clearly
// fictitious scene/flow file and unq rather than a dumped-from-ROM real
// one: the original_source filtered set does not include the constants
// tables tying real checks to real scene files and unq ids, and deriving
// them would require unknown-scene-command reverse engineering (spec.md
// §1 Non-goals).
package worlddata

import (
	"fmt"

	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/logic"
	"github.com/rickfay/albw-randomizer/internal/world"
)

// sceneFor returns the archive/file a check's placed item should anchor to:
// dungeon-affiliated checks (prizes, keys, compasses) share their dungeon's
// stage file; everything else lands in a single overworld stage file.
func sceneFor(dungeon string) world.FileRef {
	if dungeon == "" {
		return world.FileRef{Archive: "World/Overworld.sarc", File: "Overworld.byaml"}
	}
	return world.FileRef{
		Archive: "Dungeon/" + dungeon + ".sarc",
		File:    dungeon + ".byaml",
	}
}

// Build constructs the WorldGraph, plus the check-name lists the optional
// pre-placement rules (Ravio's Shop, the Bow of Light castle slot, and the
// curated maiamai rewards) need.
func Build() (g *world.Graph, shopSlots, castleSlots, maiamaiSlots []string) {
	start := &world.Area{Name: "RavioShop"}
	overworld := &world.Area{Name: "Overworld"}

	var progressionNames []string
	for i, d := range item.Catalog {
		name := checkName(d)
		unq := uint16(i + 1)
		check := &world.Check{
			Name:     name,
			Logic:    logic.Free(),
			Category: d.Category,
			Dungeon:  d.Dungeon,
			Patch: world.PatchTarget{
				Kind:  world.TargetSceneObj,
				Scene: sceneFor(d.Dungeon),
				Unq:   unq,
			},
		}
		overworld.AddCheck(check)

		switch d.Category {
		case item.CategoryMaiamai:
			maiamaiSlots = append(maiamaiSlots, name)
		case item.CategoryProgression:
			progressionNames = append(progressionNames, name)
		}
	}

	start.AddPath(&world.Path{To: overworld, Logic: logic.Free()})
	g = world.NewGraph(start, start, overworld)

	if len(progressionNames) >= 4 {
		shopSlots = append([]string(nil), progressionNames[:4]...)
	}
	if len(progressionNames) >= 5 {
		castleSlots = []string{progressionNames[4]}
	}
	return g, shopSlots, castleSlots, maiamaiSlots
}

func checkName(d item.Definition) string {
	if d.Dungeon != "" {
		return fmt.Sprintf("%s (%s)", d.Dungeon, d.Item)
	}
	return string(d.Item) + " Check"
}
