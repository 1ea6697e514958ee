package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRequireFlagsAggregatesEveryMissingFlag(t *testing.T) {
	err := requireFlags("", "", "")
	if err == nil {
		t.Fatal("expected an error when all required flags are missing")
	}
	for _, want := range []string{"--rom", "--preset", "--out"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %q", want, err.Error())
		}
	}

	if err := requireFlags("rom.3ds", "standard", "out/"); err != nil {
		t.Fatalf("requireFlags with all flags set: %v", err)
	}
}

func TestLoadSettingsDecodesADirectTomlPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my-settings.toml")
	const body = `
[logic]
logicMode = "hard"

[exclusions]
checks = ["Chest A"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Logic.LogicMode != "hard" {
		t.Fatalf("got logicMode %q, want hard", s.Logic.LogicMode)
	}
	if len(s.Exclusions.Checks) != 1 || s.Exclusions.Checks[0] != "Chest A" {
		t.Fatalf("got exclusions %v", s.Exclusions.Checks)
	}
}

func TestLoadSettingsLooksUpAPresetNameInPresetsToml(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	const body = `
[[preset]]
name = "standard"

[preset.settings.logic]
logicMode = "normal"
`
	if err := os.WriteFile("presets.toml", []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := loadSettings("standard")
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Logic.LogicMode != "normal" {
		t.Fatalf("got logicMode %q, want normal", s.Logic.LogicMode)
	}

	if _, err := loadSettings("missing"); err == nil {
		t.Fatal("expected an error for an unknown preset name")
	}
}

func TestWritePatchedCreatesNestedDirectoriesAndFiles(t *testing.T) {
	dir := t.TempDir()
	blobs := map[string][]byte{
		"World/Overworld.sarc": []byte("overworld-bytes"),
		"Dungeon/Eastern.sarc": []byte("eastern-bytes"),
	}

	if err := writePatched(dir, blobs); err != nil {
		t.Fatalf("writePatched: %v", err)
	}

	for path, want := range blobs {
		got, err := os.ReadFile(filepath.Join(dir, path))
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if string(got) != string(want) {
			t.Fatalf("%s: got %q, want %q", path, got, want)
		}
	}
}
