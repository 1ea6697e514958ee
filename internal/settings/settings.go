// Package settings decodes the generator's Settings record (spec.md §6) from
// TOML, the way the teacher decodes a package definition in parser.go.
package settings

import (
	"io"
	"io/ioutil"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rickfay/albw-randomizer/internal/logic"
	"github.com/rickfay/albw-randomizer/internal/xerrors"
)

// Logic groups the settings that affect the accessibility graph rather than
// item placement mechanics.
type Logic struct {
	LogicMode             string `toml:"logicMode"`
	RandomizeDungeonPrizes bool  `toml:"randomizeDungeonPrizes"`
	SuperItems            bool   `toml:"superItems"`
	NiceMode              bool   `toml:"niceMode"`
	BowOfLightInCastle    bool   `toml:"bowOfLightInCastle"`
	BellInShop            bool   `toml:"bellInShop"`
	PouchInShop           bool   `toml:"pouchInShop"`
	SwordInShop           bool   `toml:"swordInShop"`
	BootsInShop           bool   `toml:"bootsInShop"`
	AssuredWeapon         bool   `toml:"assuredWeapon"`
	SwordlessMode         bool   `toml:"swordlessMode"`
	MaiamaiMadness        bool   `toml:"maiamaiMadness"`
	MinigamesExcluded     bool   `toml:"minigamesExcluded"`
	NightMode             bool   `toml:"nightMode"`
	SkipBigBombFlower     bool   `toml:"skipBigBombFlower"`
	SkipTrials            bool   `toml:"skipTrials"`
	DarkRoomsLampless     bool   `toml:"darkRoomsLampless"`
	ChestSizeMatchesContents bool `toml:"chestSizeMatchesContents"`
	StartWithMerge        bool   `toml:"startWithMerge"`
	ReverseSageEvents     bool   `toml:"reverseSageEvents"`
	NoProgressionEnemies  bool   `toml:"noProgressionEnemies"`
	PreActivatedWeathervanes bool `toml:"preActivatedWeathervanes"`
	LoruleCastleRequirement int  `toml:"loruleCastleRequirement"`
	YuganonRequirement    int    `toml:"yuganonRequirement"`
	PedestalRequirement   string `toml:"pedestalRequirement"`
	HintGhostPrice        int    `toml:"hintGhostPrice"`
}

// Exclusions names checks whose vanilla/random item is forced to junk.
type Exclusions struct {
	Checks []string `toml:"checks"`
}

// Settings is the top-level record described in spec.md §6.
type Settings struct {
	Logic      Logic      `toml:"logic"`
	Exclusions Exclusions `toml:"exclusions"`
}

// Tier resolves the configured logic mode string to a logic.Tier, defaulting
// to Normal on an empty or unrecognized value.
func (s Settings) Tier() logic.Tier {
	switch strings.ToLower(s.Logic.LogicMode) {
	case "nologic":
		return logic.NoLogic
	case "hard":
		return logic.Hard
	case "glitched":
		return logic.Glitched
	case "advglitched":
		return logic.AdvGlitched
	case "hell":
		return logic.Hell
	default:
		return logic.Normal
	}
}

// Decode reads a Settings record from TOML, the same library and the same
// "decode into an exported-field struct for good error messages" idiom the
// teacher's ParsePackageDefinition uses for package definitions.
func Decode(r io.Reader) (Settings, error) {
	blob, err := ioutil.ReadAll(r)
	if err != nil {
		return Settings{}, xerrors.IO("settings.Decode", err)
	}
	var s Settings
	if _, err := toml.Decode(string(blob), &s); err != nil {
		return Settings{}, xerrors.BadFormat("settings.Decode", err.Error())
	}
	return s, nil
}

// Preset is a named, reusable Settings bundle an operator selects by name
// instead of authoring a full TOML file.
type Preset struct {
	Name     string   `toml:"name"`
	Settings Settings `toml:"settings"`
}

// PresetSet is the top-level shape of a presets TOML file: a list of named
// presets an operator can select with --preset <name>.
type PresetSet struct {
	Preset []Preset `toml:"preset"`
}

// DecodePresets reads a PresetSet from TOML.
func DecodePresets(r io.Reader) (PresetSet, error) {
	blob, err := ioutil.ReadAll(r)
	if err != nil {
		return PresetSet{}, xerrors.IO("settings.DecodePresets", err)
	}
	var ps PresetSet
	if _, err := toml.Decode(string(blob), &ps); err != nil {
		return PresetSet{}, xerrors.BadFormat("settings.DecodePresets", err.Error())
	}
	return ps, nil
}

// Lookup finds a preset by name.
func (ps PresetSet) Lookup(name string) (Settings, bool) {
	for _, p := range ps.Preset {
		if p.Name == name {
			return p.Settings, true
		}
	}
	return Settings{}, false
}
