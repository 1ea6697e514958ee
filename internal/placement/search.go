package placement

import (
	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/logic"
	"github.com/rickfay/albw-randomizer/internal/world"
)

// buildProgress folds every item in every group into a fresh Progress.
func buildProgress(tier logic.Tier, groups ...[]item.Item) *logic.Progress {
	p := logic.New(tier)
	for _, g := range groups {
		for _, it := range g {
			p.AddItem(it)
		}
	}
	return p
}

// bfsReachable walks the graph breadth-first from its fixed start area,
// following only paths whose logic is satisfied by progress, and collects
// every check (in area-then-check declaration order) whose own logic is
// satisfied. Grounded directly on util.rs's find_reachable_checks: a queue
// seeded with the start node, a visited set keyed by area identity.
func bfsReachable(g *world.Graph, progress *logic.Progress, tier logic.Tier) []*world.Check {
	visited := map[*world.Area]bool{g.Start: true}
	queue := []*world.Area{g.Start}

	var reachable []*world.Check
	for len(queue) > 0 {
		area := queue[0]
		queue = queue[1:]

		for _, c := range area.Checks {
			if c.Logic.CanAccess(tier, progress) {
				reachable = append(reachable, c)
			}
		}
		for _, p := range area.Paths {
			if !visited[p.To] && p.Logic.CanAccess(tier, progress) {
				visited[p.To] = true
				queue = append(queue, p.To)
			}
		}
	}
	return reachable
}

// itemsFromChecks collects the already-placed items among a set of checks.
func itemsFromChecks(checks []*world.Check) []item.Item {
	var out []item.Item
	for _, c := range checks {
		if !c.Empty() {
			out = append(out, c.Item)
		}
	}
	return out
}

// assumedSearch is the Assumed Search algorithm (spec.md §4.9): it finds
// every check reachable assuming the player owns every item in owned plus
// every item already placed in a check the search can reach, iterating to a
// fixed point. Grounded directly on util.rs's assumed_search.
func assumedSearch(g *world.Graph, owned []item.Item, tier logic.Tier) []*world.Check {
	reachable := bfsReachable(g, buildProgress(tier, owned), tier)
	for {
		progress := buildProgress(tier, owned, itemsFromChecks(reachable))
		next := bfsReachable(g, progress, tier)
		if sameChecks(reachable, next) {
			return next
		}
		reachable = next
	}
}

func sameChecks(a, b []*world.Check) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasEmptyReachable(checks []*world.Check) bool {
	for _, c := range checks {
		if c.Empty() {
			return true
		}
	}
	return false
}
