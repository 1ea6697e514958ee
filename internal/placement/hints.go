package placement

import (
	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/world"
)

// GhostID identifies one of the fixed overworld hint-ghost statues.
type GhostID string

// AssignHintGhosts picks, for each ghost id, a uniformly random check whose
// item is "relevant" (progression or a dungeon prize) and that no earlier
// ghost in the set already points to, consuming RNG strictly after assumed
// fill and junk fill (spec.md §5's documented RNG stream order). Grounded on
// original_source/randomizer/src/patch/messages/hint_ghosts.rs and
// modinfo/src/hints.rs, which this spec's distillation otherwise drops
// (SPEC_FULL.md §6): hint-text prose generation itself stays out of scope,
// this only decides which check each ghost points at.
func AssignHintGhosts(graph *world.Graph, ghosts []GhostID, rng *RNG) map[GhostID]*world.Check {
	var candidates []*world.Check
	for _, c := range graph.Checks() {
		if isHintRelevant(c.Item) {
			candidates = append(candidates, c)
		}
	}

	assignments := make(map[GhostID]*world.Check, len(ghosts))
	remaining := append([]*world.Check(nil), candidates...)
	for _, g := range ghosts {
		if len(remaining) == 0 {
			break
		}
		idx := rng.IntN(len(remaining))
		assignments[g] = remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return assignments
}

func isHintRelevant(it item.Item) bool {
	if it == item.Empty {
		return false
	}
	def, ok := item.Lookup(it)
	if !ok {
		return false
	}
	switch def.Category {
	case item.CategoryDungeonPrize, item.CategoryProgression, item.CategoryBigKey, item.CategorySmallKey, item.CategoryCompass:
		return true
	default:
		return false
	}
}
