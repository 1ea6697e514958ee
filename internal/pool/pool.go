// Package pool builds the progression and junk item pools the placement
// engine consumes (spec.md §4.9): a category-partitioned, per-category
// shuffled progression pool (dungeon prizes, then big keys, then small
// keys, then compasses, then all other progression), and a separately
// shuffled junk pool.
//
// Grounded directly on original_source/randomizer/src/item_pools.rs's
// get_item_pools/shuffle_order_progression_pools: the category split and
// concatenation order are carried over unchanged; the per-category Fisher-
// Yates shuffle is delegated to internal/placement's RNG wrapper so that the
// whole pipeline consumes the RNG stream in the single documented order
// spec.md §5 describes.
package pool

import "github.com/rickfay/albw-randomizer/internal/item"

// Shuffler performs an in-place Fisher-Yates shuffle; internal/placement's
// seeded RNG wrapper implements this, keeping this package itself RNG-free.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Pools is the progression/junk split assumed fill consumes.
type Pools struct {
	Progression []item.Item
	Junk        []item.Item
}

func itemsByCategory(cat item.Category) []item.Item {
	var out []item.Item
	for _, d := range item.Catalog {
		if d.Category == cat {
			out = append(out, d.Item)
		}
	}
	return out
}

func shuffle(s Shuffler, items []item.Item) []item.Item {
	out := append([]item.Item(nil), items...)
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Build partitions the catalog into progression and junk pools, shuffling
// each category independently before concatenating them in the fixed order
// spec.md §4.9 step 1 requires: dungeon prizes, big keys, small keys,
// compasses, then all other progression, ore, and maiamai (ore keeps the
// pairing rule in spec.md §4.9 step 2; rupees and the remaining junk items
// form the separately shuffled junk pool).
func Build(s Shuffler) Pools {
	prizes := shuffle(s, itemsByCategory(item.CategoryDungeonPrize))
	bigKeys := shuffle(s, itemsByCategory(item.CategoryBigKey))
	smallKeys := shuffle(s, itemsByCategory(item.CategorySmallKey))
	compasses := shuffle(s, itemsByCategory(item.CategoryCompass))
	other := shuffle(s, itemsByCategory(item.CategoryProgression))
	ores := shuffle(s, itemsByCategory(item.CategoryOre))
	maiamai := shuffle(s, itemsByCategory(item.CategoryMaiamai))

	var progression []item.Item
	progression = append(progression, prizes...)
	progression = append(progression, bigKeys...)
	progression = append(progression, smallKeys...)
	progression = append(progression, compasses...)
	progression = append(progression, other...)
	progression = append(progression, ores...)
	progression = append(progression, maiamai...)

	junkCategories := []item.Category{item.CategoryJunk, item.CategoryRupee}
	var junk []item.Item
	for _, cat := range junkCategories {
		junk = append(junk, itemsByCategory(cat)...)
	}
	junk = shuffle(s, junk)

	return Pools{Progression: progression, Junk: junk}
}

// CategoryOf is a thin forwarding helper so callers outside this package
// don't need to import internal/item directly just to classify a pool item.
func CategoryOf(it item.Item) (item.Category, bool) {
	d, ok := item.Lookup(it)
	if !ok {
		return 0, false
	}
	return d.Category, true
}
