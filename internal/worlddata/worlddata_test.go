package worlddata

import (
	"testing"

	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/world"
)

func TestBuildProducesOneCheckPerCatalogEntry(t *testing.T) {
	g, shopSlots, castleSlots, maiamaiSlots := Build()

	checks := g.Checks()
	if len(checks) != len(item.Catalog) {
		t.Fatalf("got %d checks, want %d (one per catalog entry)", len(checks), len(item.Catalog))
	}

	seen := make(map[string]bool, len(checks))
	for _, c := range checks {
		if seen[c.Name] {
			t.Fatalf("duplicate check name %q", c.Name)
		}
		seen[c.Name] = true
		if c.Patch.Kind != world.TargetSceneObj {
			t.Fatalf("check %q: expected a TargetSceneObj patch target", c.Name)
		}
		if c.Patch.Scene.Archive == "" || c.Patch.Scene.File == "" {
			t.Fatalf("check %q: empty scene file ref", c.Name)
		}
	}

	if len(shopSlots) != 4 {
		t.Fatalf("got %d shop slots, want 4", len(shopSlots))
	}
	if len(castleSlots) != 1 {
		t.Fatalf("got %d castle slots, want 1", len(castleSlots))
	}
	if len(maiamaiSlots) == 0 {
		t.Fatal("expected at least one maiamai slot")
	}
}

func TestBuildGroupsDungeonChecksUnderTheirOwnSceneFile(t *testing.T) {
	g, _, _, _ := Build()
	for _, c := range g.Checks() {
		if c.Dungeon == "" {
			continue
		}
		want := "Dungeon/" + c.Dungeon + ".sarc"
		if c.Patch.Scene.Archive != want {
			t.Fatalf("check %q: scene archive = %q, want %q", c.Name, c.Patch.Scene.Archive, want)
		}
	}
}
