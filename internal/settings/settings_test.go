package settings

import (
	"strings"
	"testing"

	"github.com/rickfay/albw-randomizer/internal/logic"
)

func TestDecodeBasicSettings(t *testing.T) {
	src := `
[logic]
logicMode = "hard"
randomizeDungeonPrizes = true
bellInShop = true

[exclusions]
checks = ["Treasure Chest (Big Bomb Flower Secret)"]
`
	s, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Tier() != logic.Hard {
		t.Fatalf("expected Hard tier, got %v", s.Tier())
	}
	if !s.Logic.RandomizeDungeonPrizes || !s.Logic.BellInShop {
		t.Fatal("expected randomizeDungeonPrizes and bellInShop to be true")
	}
	if len(s.Exclusions.Checks) != 1 {
		t.Fatalf("expected 1 exclusion, got %d", len(s.Exclusions.Checks))
	}
}

func TestTierDefaultsToNormal(t *testing.T) {
	s := Settings{}
	if s.Tier() != logic.Normal {
		t.Fatalf("expected default tier Normal, got %v", s.Tier())
	}
}

func TestDecodeRejectsMalformedToml(t *testing.T) {
	if _, err := Decode(strings.NewReader("[logic\n")); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}

func TestPresetLookup(t *testing.T) {
	src := `
[[preset]]
name = "standard"
[preset.settings.logic]
logicMode = "normal"
`
	ps, err := DecodePresets(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := ps.Lookup("standard")
	if !ok {
		t.Fatal("expected to find preset \"standard\"")
	}
	if s.Tier() != logic.Normal {
		t.Fatalf("expected Normal tier, got %v", s.Tier())
	}
	if _, ok := ps.Lookup("missing"); ok {
		t.Fatal("expected \"missing\" preset to be absent")
	}
}
