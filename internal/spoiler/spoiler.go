// Package spoiler implements PresetAndSeedIO's spoiler/hint half (spec.md
// §6: "A spoiler/hint document as structured text"): a flat record of every
// placed, non-excluded check plus hint-ghost assignments, serialized as YAML for players
// and optionally dumped as TOML for debugging.
//
// Grounded on internal/settings's own choice of config library for the
// debug dump (the teacher's parser.go decodes TOML; this package encodes it
// for the same reason, a human-readable dump) and on gopkg.in/yaml.v3 for
// the primary spoiler format, the library the retrieval pack itself reaches
// for wherever a repo needs readable structured output.
package spoiler

import (
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rickfay/albw-randomizer/internal/placement"
	"github.com/rickfay/albw-randomizer/internal/settings"
	"github.com/rickfay/albw-randomizer/internal/world"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// Placement is one placed check, flattened for serialization.
type Placement struct {
	Check   string `yaml:"check" toml:"check"`
	Item    string `yaml:"item" toml:"item"`
	Dungeon string `yaml:"dungeon,omitempty" toml:"dungeon,omitempty"`
}

// HintGhost is one hint-ghost statue's assignment, flattened for serialization.
type HintGhost struct {
	Ghost string `yaml:"ghost" toml:"ghost"`
	Check string `yaml:"check" toml:"check"`
	Item  string `yaml:"item" toml:"item"`
}

// Document is the complete spoiler/hint output for one generated seed.
type Document struct {
	Seed       uint64      `yaml:"seed" toml:"seed"`
	LogicMode  string      `yaml:"logicMode" toml:"logicMode"`
	Placements []Placement `yaml:"placements" toml:"placements"`
	HintGhosts []HintGhost `yaml:"hintGhosts,omitempty" toml:"hintGhosts,omitempty"`
}

// Build flattens a finished Layout (every world.Check already carrying its
// placed Item) and, if non-nil, a set of hint-ghost assignments, into a
// Document ready to serialize. Placements are emitted in world-graph
// declaration order (spec.md §5's iteration-order guarantee); hint ghosts
// are emitted sorted by ghost id for a stable, diffable document.
func Build(seed uint64, s settings.Settings, graph *world.Graph, hints map[placement.GhostID]*world.Check) *Document {
	doc := &Document{
		Seed:      seed,
		LogicMode: s.Logic.LogicMode,
	}
	for _, c := range graph.Checks() {
		if c.Excluded || c.Empty() {
			continue
		}
		doc.Placements = append(doc.Placements, Placement{
			Check:   c.Name,
			Item:    string(c.Item),
			Dungeon: c.Dungeon,
		})
	}

	ghostIDs := make([]string, 0, len(hints))
	byGhost := make(map[string]*world.Check, len(hints))
	for g, c := range hints {
		ghostIDs = append(ghostIDs, string(g))
		byGhost[string(g)] = c
	}
	sort.Strings(ghostIDs)
	for _, g := range ghostIDs {
		c := byGhost[g]
		doc.HintGhosts = append(doc.HintGhosts, HintGhost{
			Ghost: g,
			Check: c.Name,
			Item:  string(c.Item),
		})
	}
	return doc
}

// WriteYAML serializes the document as the primary, player-facing spoiler
// format.
func (d *Document) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(d); err != nil {
		return xerrors.IO("spoiler.WriteYAML", err)
	}
	return nil
}

// WriteDebugTOML serializes the same document as TOML, for developers who
// want to diff a spoiler against a settings/preset file written in the same
// format.
func (d *Document) WriteDebugTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return xerrors.IO("spoiler.WriteDebugTOML", err)
	}
	return nil
}
