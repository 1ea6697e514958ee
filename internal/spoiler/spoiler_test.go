package spoiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rickfay/albw-randomizer/internal/item"
	"github.com/rickfay/albw-randomizer/internal/logic"
	"github.com/rickfay/albw-randomizer/internal/placement"
	"github.com/rickfay/albw-randomizer/internal/settings"
	"github.com/rickfay/albw-randomizer/internal/world"

	"gopkg.in/yaml.v3"
)

func buildGraph() *world.Graph {
	area := &world.Area{Name: "Hyrule"}
	area.AddCheck(&world.Check{Name: "Chest A", Logic: logic.Free(), Item: item.Bow})
	area.AddCheck(&world.Check{Name: "Chest B", Logic: logic.Free(), Item: item.Empty})
	area.AddCheck(&world.Check{Name: "Chest C", Logic: logic.Free(), Item: item.Hammer, Excluded: true})
	area.AddCheck(&world.Check{Name: "Prize", Logic: logic.Free(), Category: item.CategoryDungeonPrize, Item: item.PendantOfPower, Dungeon: "Eastern Palace"})
	return world.NewGraph(area, area)
}

func TestBuildFlattensPlacementsInDeclarationOrderSkippingEmptyAndExcluded(t *testing.T) {
	g := buildGraph()
	doc := Build(1234, settings.Settings{Logic: settings.Logic{LogicMode: "normal"}}, g, nil)

	if doc.Seed != 1234 || doc.LogicMode != "normal" {
		t.Fatalf("unexpected header: %+v", doc)
	}
	if len(doc.Placements) != 2 {
		t.Fatalf("expected 2 placements (empty/excluded skipped), got %d: %+v", len(doc.Placements), doc.Placements)
	}
	if doc.Placements[0].Check != "Chest A" || doc.Placements[0].Item != string(item.Bow) {
		t.Fatalf("placement[0] = %+v", doc.Placements[0])
	}
	if doc.Placements[1].Check != "Prize" || doc.Placements[1].Dungeon != "Eastern Palace" {
		t.Fatalf("placement[1] = %+v", doc.Placements[1])
	}
}

func TestBuildSortsHintGhostsByID(t *testing.T) {
	g := buildGraph()
	checks := g.Checks()
	hints := map[placement.GhostID]*world.Check{
		placement.GhostID("zeta"):  checks[0],
		placement.GhostID("alpha"): checks[3],
	}
	doc := Build(1, settings.Settings{}, g, hints)

	if len(doc.HintGhosts) != 2 {
		t.Fatalf("expected 2 hint ghosts, got %d", len(doc.HintGhosts))
	}
	if doc.HintGhosts[0].Ghost != "alpha" || doc.HintGhosts[1].Ghost != "zeta" {
		t.Fatalf("hint ghosts not sorted: %+v", doc.HintGhosts)
	}
	if doc.HintGhosts[0].Check != "Prize" || doc.HintGhosts[0].Item != string(item.PendantOfPower) {
		t.Fatalf("hint ghost[0] = %+v", doc.HintGhosts[0])
	}
}

func TestWriteYAMLRoundTrips(t *testing.T) {
	doc := Build(42, settings.Settings{Logic: settings.Logic{LogicMode: "hard"}}, buildGraph(), nil)

	var buf bytes.Buffer
	if err := doc.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var got Document
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Seed != 42 || got.LogicMode != "hard" || len(got.Placements) != len(doc.Placements) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, doc)
	}
}

func TestWriteDebugTOMLProducesParsableOutput(t *testing.T) {
	doc := Build(7, settings.Settings{}, buildGraph(), nil)

	var buf bytes.Buffer
	if err := doc.WriteDebugTOML(&buf); err != nil {
		t.Fatalf("WriteDebugTOML: %v", err)
	}
	if !strings.Contains(buf.String(), "seed = 7") {
		t.Fatalf("expected seed field in TOML dump, got:\n%s", buf.String())
	}
}
