package placement

import (
	"fmt"

	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/logic"
	"github.com/rickfay/albw-randomizer/internal/pool"
	"github.com/rickfay/albw-randomizer/internal/settings"
	"github.com/rickfay/albw-randomizer/internal/world"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// Preplaced is a single static (check, item) assignment applied before fill,
// generalizing alr.rs's place_static calls (vanilla dungeon prizes, shop
// freebies, un-randomized world items).
type Preplaced struct {
	Check string
	Item  item.Item
}

// Input collects everything a run of the PlacementEngine needs.
type Input struct {
	Graph    *world.Graph
	Settings settings.Settings
	RNG      *RNG
	Pools    pool.Pools

	Preplaced  []Preplaced
	Exclusions []string

	// ShopSlots, CastleSlots and MaiamaiRewardSlots name the checks eligible
	// for the corresponding pre-placement rule in spec.md §4.9 (Ravio's Shop
	// slots, castle checks eligible for the Bow of Light, and the canonical
	// maiamai-reward check ids), standing in for alr.rs's hardcoded
	// shop_positions/bow_light_positions/maiamai_positions lists since this
	// toolkit's WorldGraph is built by the caller rather than hardcoded
	// against the full ~380-check game world.
	ShopSlots          []string
	CastleSlots        []string
	MaiamaiRewardSlots []string
}

// Engine runs a single placement pass over a WorldGraph.
type Engine struct {
	graph    *world.Graph
	settings settings.Settings
	rng      *RNG
	byName   map[string]*world.Check

	progression []item.Item
	junk        []item.Item
}

func newEngine(in Input) *Engine {
	byName := make(map[string]*world.Check)
	for _, c := range in.Graph.Checks() {
		byName[c.Name] = c
	}
	return &Engine{
		graph:       in.Graph,
		settings:    in.Settings,
		rng:         in.RNG,
		byName:      byName,
		progression: append([]item.Item(nil), in.Pools.Progression...),
		junk:        append([]item.Item(nil), in.Pools.Junk...),
	}
}

// Fill runs the complete PlacementEngine pipeline: the pre-fill
// reachability check, exclusions and pre-placement, assumed fill, the
// post-fill reachability invariant, and junk fill. Grounded directly on alr.rs's
// fill_all_locations_reachable, which drives these same five stages in this
// same order.
func Fill(in Input) error {
	e := newEngine(in)
	tier := e.settings.Tier()

	if err := e.verifyAllAccessible(tier); err != nil {
		return err
	}
	if err := e.applyExclusions(in.Exclusions); err != nil {
		return err
	}
	if err := e.applyPreplaced(in.Preplaced); err != nil {
		return err
	}
	e.applyBowOfLightInCastle(in.CastleSlots)

	shopSlots := append([]string(nil), in.ShopSlots...)
	shopSlots = e.applyShopItem(shopSlots, e.settings.Logic.BellInShop, item.Bell)
	shopSlots = e.applyShopItem(shopSlots, e.settings.Logic.PouchInShop, item.Pouch)
	shopSlots = e.applyShopItem(shopSlots, e.settings.Logic.SwordInShop, item.Sword01)
	shopSlots = e.applyShopItem(shopSlots, e.settings.Logic.BootsInShop, item.PegasusBoots)
	e.applyAssuredWeapon(shopSlots)

	e.applyMaiamaiRewards(in.MaiamaiRewardSlots)

	if err := e.assumedFill(tier); err != nil {
		return err
	}
	if err := e.verifyReachability(tier); err != nil {
		return err
	}
	return e.fillJunk()
}

// verifyAllAccessible generalizes alr.rs's verify_all_locations_accessible:
// rather than comparing against a hardcoded total check count (specific to
// the full ~380-check game world this toolkit does not hardcode), it
// compares the assumed-search result against every non-excluded check
// actually declared in the WorldGraph.
func (e *Engine) verifyAllAccessible(tier logic.Tier) error {
	if tier == logic.NoLogic {
		return nil
	}
	return e.checkAllReachable(assumedSearch(e.graph, e.progression, tier))
}

// verifyReachability is the post-fill reachability invariant (spec.md §8
// property 5 / §4.9 step 3): with the progression pool now empty, every
// in-logic (non-excluded) check must be reachable purely from placed items.
func (e *Engine) verifyReachability(tier logic.Tier) error {
	if tier == logic.NoLogic {
		return nil
	}
	return e.checkAllReachable(assumedSearch(e.graph, nil, tier))
}

func (e *Engine) checkAllReachable(reachable []*world.Check) error {
	reachableSet := make(map[*world.Check]bool, len(reachable))
	for _, c := range reachable {
		reachableSet[c] = true
	}
	var unreachable []string
	for _, c := range e.graph.Checks() {
		if c.Excluded {
			continue
		}
		if !reachableSet[c] {
			unreachable = append(unreachable, c.Name)
		}
	}
	if len(unreachable) > 0 {
		return xerrors.PlacementInfeasible("UnreachableChecks", unreachable...)
	}
	return nil
}

func (e *Engine) applyPreplaced(pairs []Preplaced) error {
	for _, p := range pairs {
		c, ok := e.byName[p.Check]
		if !ok {
			return xerrors.PlacementInfeasible("unknown preplaced check: " + p.Check)
		}
		if !c.Empty() {
			return xerrors.PlacementInfeasible("conflicting preplacement at " + p.Check)
		}
		e.removeFromProgression(p.Item)
		c.Item = p.Item
	}
	return nil
}

func (e *Engine) applyExclusions(names []string) error {
	for _, name := range names {
		c, ok := e.byName[name]
		if !ok {
			return xerrors.PlacementInfeasible("unknown excluded check: " + name)
		}
		if len(e.junk) == 0 {
			return xerrors.PlacementInfeasible("NoEligibleCheck: no junk left to exclude " + name)
		}
		idx := e.rng.IntN(len(e.junk))
		c.Item = e.junk[idx]
		e.junk = append(e.junk[:idx], e.junk[idx+1:]...)
		c.Excluded = true
	}
	return nil
}

func (e *Engine) applyBowOfLightInCastle(slots []string) {
	if !e.settings.Logic.BowOfLightInCastle || len(slots) == 0 {
		return
	}
	if !e.removeFromProgression(item.BowOfLight) {
		return
	}
	idx := e.rng.IntN(len(slots))
	e.byName[slots[idx]].Item = item.BowOfLight
}

// applyShopItem places it onto a random remaining shop slot when enabled is
// set, returning the slots slice with that slot consumed. Generalizes the
// bell/pouch/sword/boots-in-shop rules, which are otherwise identical.
func (e *Engine) applyShopItem(slots []string, enabled bool, it item.Item) []string {
	if !enabled || len(slots) == 0 {
		return slots
	}
	idx := e.rng.IntN(len(slots))
	slot := slots[idx]
	slots = append(append([]string(nil), slots[:idx]...), slots[idx+1:]...)
	e.removeFromProgression(it)
	e.byName[slot].Item = it
	return slots
}

func (e *Engine) applyAssuredWeapon(shopSlots []string) {
	l := e.settings.Logic
	if l.SwordInShop || l.BootsInShop || !l.AssuredWeapon || len(shopSlots) == 0 {
		return
	}
	weapons := []item.Item{item.Bow, item.Bombs, item.FireRod, item.IceRod, item.Hammer, item.PegasusBoots}
	if !l.SwordlessMode {
		weapons = append(weapons, item.Sword01)
	}
	if e.settings.Tier() != logic.Normal {
		weapons = append(weapons, item.Lamp, item.Net)
	}

	var available []item.Item
	for _, w := range weapons {
		if e.containsProgression(w) {
			available = append(available, w)
		}
	}
	if len(available) == 0 {
		return
	}
	weapon := available[e.rng.IntN(len(available))]
	idx := e.rng.IntN(len(shopSlots))
	e.removeFromProgression(weapon)
	e.byName[shopSlots[idx]].Item = weapon
}

// applyMaiamaiRewards pre-places the fixed maiamai-reward sequence (in
// catalog declaration order) onto the given canonical slots, pulling those
// items out of the progression pool, unless maiamai madness leaves them in
// the shuffled pool.
func (e *Engine) applyMaiamaiRewards(slots []string) {
	if e.settings.Logic.MaiamaiMadness || len(slots) == 0 {
		return
	}
	var maiamai, kept []item.Item
	for _, it := range e.progression {
		if d, ok := item.Lookup(it); ok && d.Category == item.CategoryMaiamai {
			maiamai = append(maiamai, it)
		} else {
			kept = append(kept, it)
		}
	}
	e.progression = kept

	n := len(slots)
	if len(maiamai) < n {
		n = len(maiamai)
	}
	for i := 0; i < n; i++ {
		e.byName[slots[i]].Item = maiamai[i]
	}
}

// assumedFill is the Assumed Fill algorithm (spec.md §4.9): draw the next
// progression item, recompute what's reachable assuming every other
// undistributed item is already owned, restrict to empty checks eligible
// for that item's category, and place it on a uniformly random one.
// Grounded directly on alr.rs's assumed_fill.
func (e *Engine) assumedFill(tier logic.Tier) error {
	reachable := assumedSearch(e.graph, e.progression, tier)
	for hasEmptyReachable(reachable) && len(e.progression) > 0 {
		it := e.progression[0]
		e.progression = e.progression[1:]

		reachable = assumedSearch(e.graph, e.progression, tier)
		eligible := e.filterEligible(it, reachable)
		if len(eligible) == 0 {
			return xerrors.PlacementInfeasible("NoEligibleCheck: " + string(it))
		}

		if item.IsOre(it) {
			if err := e.placeOrePair(it, eligible, tier); err != nil {
				return err
			}
			continue
		}
		eligible[e.rng.IntN(len(eligible))].Item = it
	}
	return nil
}

// filterEligible restricts reachable empty checks to those whose declared
// Category (and, for keys, Dungeon) matches the item being placed: dungeon
// prizes and compasses go only to matching-category checks, dungeon keys
// only to checks belonging to the same dungeon. Other progression and ore
// carry no restriction beyond reachability.
func (e *Engine) filterEligible(it item.Item, reachable []*world.Check) []*world.Check {
	def, _ := item.Lookup(it)

	var out []*world.Check
	for _, c := range reachable {
		if !c.Empty() {
			continue
		}
		switch def.Category {
		case item.CategoryDungeonPrize, item.CategoryCompass:
			if c.Category != def.Category {
				continue
			}
		case item.CategoryBigKey, item.CategorySmallKey:
			if c.Category != def.Category || c.Dungeon != def.Dungeon {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// placeOrePair implements the ore pairing rule: placing the first ore pulls
// a second ore out of the pool (if one remains) and places it on a
// reachable, distinct ore-eligible check in the same step.
func (e *Engine) placeOrePair(first item.Item, eligible []*world.Check, tier logic.Tier) error {
	c1 := eligible[e.rng.IntN(len(eligible))]
	c1.Item = first

	oreIdx := -1
	for i, it := range e.progression {
		if item.IsOre(it) {
			oreIdx = i
			break
		}
	}
	if oreIdx == -1 {
		return nil
	}
	second := e.progression[oreIdx]
	e.progression = append(e.progression[:oreIdx], e.progression[oreIdx+1:]...)

	reachable := assumedSearch(e.graph, e.progression, tier)
	var candidates []*world.Check
	for _, c := range e.filterEligible(second, reachable) {
		if c != c1 {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return xerrors.PlacementInfeasible("NoEligibleCheck: " + string(second))
	}
	candidates[e.rng.IntN(len(candidates))].Item = second
	return nil
}

// fillJunk places every remaining junk item onto a uniformly random empty
// check, failing if the counts don't match exactly (spec.md §4.9's
// PoolMismatch failure).
func (e *Engine) fillJunk() error {
	var empties []*world.Check
	for _, c := range e.graph.Checks() {
		if c.Empty() {
			empties = append(empties, c)
		}
	}
	if len(empties) != len(e.junk) {
		return xerrors.PlacementInfeasible(fmt.Sprintf("PoolMismatch: %d empty checks, %d junk items", len(empties), len(e.junk)))
	}
	for _, it := range e.junk {
		idx := e.rng.IntN(len(empties))
		empties[idx].Item = it
		empties = append(empties[:idx], empties[idx+1:]...)
	}
	return nil
}

func (e *Engine) removeFromProgression(it item.Item) bool {
	for i, x := range e.progression {
		if x == it {
			e.progression = append(e.progression[:i], e.progression[i+1:]...)
			return true
		}
	}
	return false
}

func (e *Engine) containsProgression(it item.Item) bool {
	for _, x := range e.progression {
		if x == it {
			return true
		}
	}
	return false
}
