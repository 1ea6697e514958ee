package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ogier/pflag"

	"github.com/rickfay/albw-randomizer/internal/diag"
	"github.com/rickfay/albw-randomizer/internal/patcher"
	"github.com/rickfay/albw-randomizer/internal/placement"
	"github.com/rickfay/albw-randomizer/internal/pool"
	"github.com/rickfay/albw-randomizer/internal/rom"
	"github.com/rickfay/albw-randomizer/internal/settings"
	"github.com/rickfay/albw-randomizer/internal/spoiler"
	"github.com/rickfay/albw-randomizer/internal/world"
	"github.com/rickfay/albw-randomizer/internal/worlddata"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// hintGhosts is the fixed set of overworld hint-ghost statues this build
// assigns check hints to, named after the Hyrule-field subset of
// original_source/randomizer/src/patch/messages/hint_ghosts.rs's ghost enum
// (the full ~100-ghost roster pairs with real scene/unq ids this toolkit's
// WorldGraph doesn't carry; see internal/worlddata's package doc).
var hintGhosts = []placement.GhostID{
	"LostWoodsMaze1", "LostWoodsMaze2", "LostWoodsMaze3",
	"LostWoods", "SpectacleRock", "TowerOfHeraOutside", "FloatingIsland",
	"FireCave", "MoldormCave", "ZorasDomain", "FortuneTellerHyrule",
	"Sanctuary", "GraveyardHyrule", "WaterfallCave", "Well", "ShadyGuy",
	"StylishWoman", "BlacksmithCave", "EasternRuinsPegs", "EasternRuinsCave",
	"EasternRuinsEntrance", "RupeeRushHyrule", "Cuccos", "SouthBridge",
	"SouthernRuins", "HouseOfGalesIsland", "HyruleHotfoot", "Letter",
}

func runGenerate(args []string) error {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	romPath := fs.String("rom", "", "path to the input 3DS ROM image")
	presetArg := fs.String("preset", "", "preset name (looked up in ./presets.toml) or a path to a settings TOML file")
	seed := fs.Uint64("seed", 0, "seed integer (0 picks a random seed)")
	outDir := fs.String("out", "", "output directory for patched romfs files")
	spoilerPath := fs.String("spoiler", "", "optional path to write a YAML spoiler log")
	verbose := fs.BoolP("verbose", "v", false, "print stage timing to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := requireFlags(*romPath, *presetArg, *outDir); err != nil {
		return err
	}

	trace := diag.NewTrace(os.Stderr, *verbose)

	trace.Stage("open rom")
	img, err := rom.Open(*romPath)
	if err != nil {
		return err
	}
	defer img.Close()
	romfs, err := img.RomFs()
	if err != nil {
		return err
	}

	trace.Stage("load settings")
	s, err := loadSettings(*presetArg)
	if err != nil {
		return err
	}

	trace.Stage("build world")
	graph, shopSlots, castleSlots, maiamaiSlots := worlddata.Build()

	resolvedSeed := *seed
	if resolvedSeed == 0 {
		resolvedSeed, err = randomSeed()
		if err != nil {
			return err
		}
	}
	rng := placement.NewRNG(resolvedSeed)
	pools := pool.Build(rng)

	trace.Stage("place items")
	in := placement.Input{
		Graph:              graph,
		Settings:           s,
		RNG:                rng,
		Pools:              pools,
		Exclusions:         s.Exclusions.Checks,
		ShopSlots:          shopSlots,
		CastleSlots:        castleSlots,
		MaiamaiRewardSlots: maiamaiSlots,
	}
	if err := placement.Fill(in); err != nil {
		return err
	}

	trace.Stage("assign hint ghosts")
	hints := placement.AssignHintGhosts(graph, hintGhosts, rng)

	trace.Stage("patch rom")
	patched, err := patcher.Apply(romfs, graph)
	if err != nil {
		return err
	}

	trace.Stage("write output")
	if err := writePatched(*outDir, patched); err != nil {
		return err
	}

	if *spoilerPath != "" {
		trace.Stage("write spoiler")
		if err := writeSpoiler(*spoilerPath, resolvedSeed, s, graph, hints); err != nil {
			return err
		}
	}
	trace.Done()

	fmt.Fprintf(os.Stdout, "seed %d: wrote %d patched file(s) to %s\n", resolvedSeed, len(patched), *outDir)
	return nil
}

// loadSettings resolves --preset per the CLI surface's documented
// "<name|path.toml>" duality: a path ending in .toml decodes directly as a
// Settings record, anything else is looked up by name in ./presets.toml.
func loadSettings(arg string) (settings.Settings, error) {
	if strings.HasSuffix(arg, ".toml") {
		f, err := os.Open(arg)
		if err != nil {
			return settings.Settings{}, xerrors.IO("generate: open preset file", err)
		}
		defer f.Close()
		return settings.Decode(f)
	}

	f, err := os.Open("presets.toml")
	if err != nil {
		return settings.Settings{}, fmt.Errorf("preset %q: no presets.toml found alongside the working directory to look it up in: %w", arg, err)
	}
	defer f.Close()

	ps, err := settings.DecodePresets(f)
	if err != nil {
		return settings.Settings{}, err
	}
	s, ok := ps.Lookup(arg)
	if !ok {
		return settings.Settings{}, fmt.Errorf("preset %q not found in presets.toml", arg)
	}
	return s, nil
}

// requireFlags collects every missing required flag at once, via
// xerrors.Collector, rather than reporting only the first one found.
func requireFlags(romPath, presetArg, outDir string) error {
	var errs xerrors.Collector
	if romPath == "" {
		errs.Addf("generate: --rom is required")
	}
	if presetArg == "" {
		errs.Addf("generate: --preset is required")
	}
	if outDir == "" {
		errs.Addf("generate: --out is required")
	}
	return errs.Err()
}

func randomSeed() (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, xerrors.IO("generate: pick random seed", err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func writePatched(dir string, blobs map[string][]byte) error {
	for path, data := range blobs {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return xerrors.IO("generate: write patched file", err)
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			return xerrors.IO("generate: write patched file", err)
		}
	}
	return nil
}

func writeSpoiler(path string, seed uint64, s settings.Settings, graph *world.Graph, hints map[placement.GhostID]*world.Check) error {
	doc := spoiler.Build(seed, s, graph, hints)
	f, err := os.Create(path)
	if err != nil {
		return xerrors.IO("generate: write spoiler", err)
	}
	defer f.Close()
	return doc.WriteYAML(f)
}
