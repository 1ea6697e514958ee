package pool

import (
	"testing"

	"github.com/rickfay/albw-randomizer/internal/item"
)

// identityShuffler performs no reordering, making pool composition
// assertions deterministic without depending on internal/placement's RNG.
type identityShuffler struct{}

func (identityShuffler) Shuffle(n int, swap func(i, j int)) {}

func TestBuildPartitionOrder(t *testing.T) {
	p := Build(identityShuffler{})

	prizeCount := len(catalogOf(item.CategoryDungeonPrize))
	bigKeyCount := len(catalogOf(item.CategoryBigKey))
	smallKeyCount := len(catalogOf(item.CategorySmallKey))
	compassCount := len(catalogOf(item.CategoryCompass))

	if len(p.Progression) == 0 {
		t.Fatal("expected a non-empty progression pool")
	}
	for i := 0; i < prizeCount; i++ {
		cat, ok := CategoryOf(p.Progression[i])
		if !ok || cat != item.CategoryDungeonPrize {
			t.Fatalf("index %d: expected a dungeon prize, got %v", i, p.Progression[i])
		}
	}
	offset := prizeCount
	for i := 0; i < bigKeyCount; i++ {
		cat, ok := CategoryOf(p.Progression[offset+i])
		if !ok || cat != item.CategoryBigKey {
			t.Fatalf("index %d: expected a big key, got %v", offset+i, p.Progression[offset+i])
		}
	}
	offset += bigKeyCount
	for i := 0; i < smallKeyCount; i++ {
		cat, ok := CategoryOf(p.Progression[offset+i])
		if !ok || cat != item.CategorySmallKey {
			t.Fatalf("index %d: expected a small key, got %v", offset+i, p.Progression[offset+i])
		}
	}
	offset += smallKeyCount
	for i := 0; i < compassCount; i++ {
		cat, ok := CategoryOf(p.Progression[offset+i])
		if !ok || cat != item.CategoryCompass {
			t.Fatalf("index %d: expected a compass, got %v", offset+i, p.Progression[offset+i])
		}
	}
}

func TestJunkPoolExcludesProgression(t *testing.T) {
	p := Build(identityShuffler{})
	for _, it := range p.Junk {
		cat, ok := CategoryOf(it)
		if !ok {
			t.Fatalf("junk item %v has no category", it)
		}
		if cat != item.CategoryJunk && cat != item.CategoryRupee {
			t.Fatalf("junk pool contains a non-junk item: %v (%v)", it, cat)
		}
	}
}

func catalogOf(cat item.Category) []item.Item {
	var out []item.Item
	for _, d := range item.Catalog {
		if d.Category == cat {
			out = append(out, d.Item)
		}
	}
	return out
}
