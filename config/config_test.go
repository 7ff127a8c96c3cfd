package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Stage.Size != 100 {
		t.Errorf("expected stage size 100, got %v", cfg.Stage.Size)
	}
	if cfg.Creatures.BaseVelocity != 20 {
		t.Errorf("expected base velocity 20, got %v", cfg.Creatures.BaseVelocity)
	}
	if cfg.Foraging.PClosest != 0.6 {
		t.Errorf("expected p_closest 0.6, got %v", cfg.Foraging.PClosest)
	}
	if len(cfg.Creatures.Species) != 6 {
		t.Errorf("expected 6 species, got %d", len(cfg.Creatures.Species))
	}
	if cfg.Resource.InitialCount != 20 || cfg.Resource.RespawnInterval != 1.2 {
		t.Errorf("unexpected resource defaults: %+v", cfg.Resource)
	}
}

func TestLoadDerived(t *testing.T) {
	cfg := Default()

	if got, want := cfg.Derived.ArrivalRadiusSq, 0.8*0.8; got != want {
		t.Errorf("ArrivalRadiusSq = %v, want %v", got, want)
	}
	if idx, ok := cfg.Derived.VariantIndex["bush"]; !ok || idx != 1 {
		t.Errorf("expected bush at index 1, got %d (ok=%v)", idx, ok)
	}
}

func TestRefreshDerivedAfterEdit(t *testing.T) {
	cfg := Default()
	cfg.Creatures.ArrivalRadius = 3
	cfg.Resource.Variants = []string{"fern"}
	cfg.RefreshDerived()

	if got := cfg.Derived.ArrivalRadiusSq; got != 9 {
		t.Errorf("ArrivalRadiusSq = %v, want 9", got)
	}
	if _, ok := cfg.Derived.VariantIndex["bush"]; ok {
		t.Error("stale variant left in VariantIndex")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("foraging:\n  p_closest: 1.0\nstage:\n  size: 40\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Foraging.PClosest != 1.0 {
		t.Errorf("expected overlay p_closest 1.0, got %v", cfg.Foraging.PClosest)
	}
	if cfg.Stage.Size != 40 {
		t.Errorf("expected overlay stage size 40, got %v", cfg.Stage.Size)
	}
	// Untouched fields keep their defaults
	if cfg.Foraging.ConsumedEpsilonSq != 0.1 {
		t.Errorf("expected default epsilon 0.1, got %v", cfg.Foraging.ConsumedEpsilonSq)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"negative dt", "physics:\n  dt: -1\n"},
		{"p_closest above one", "foraging:\n  p_closest: 1.5\n"},
		{"zero respawn interval", "resource:\n  respawn_interval: 0\n"},
		{"no variants", "resource:\n  variants: []\n"},
		{"zero arrival radius", "creatures:\n  arrival_radius: 0\n"},
		{"negative per_species", "creatures:\n  per_species: -1\n"},
		{"negative run energy drain", "vitality:\n  run_energy_drain: -0.5\n"},
		{"negative drink energy gain", "vitality:\n  drink_energy_gain: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()

	clone.Creatures.Species[0] = "Moose"
	clone.Foraging.PClosest = 0.1

	if cfg.Creatures.Species[0] == "Moose" {
		t.Error("clone shares species slice with original")
	}
	if cfg.Foraging.PClosest == 0.1 {
		t.Error("clone shares foraging config with original")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Foraging.PClosest = 0.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after WriteYAML failed: %v", err)
	}
	if loaded.Foraging.PClosest != 0.25 {
		t.Errorf("expected p_closest 0.25 after roundtrip, got %v", loaded.Foraging.PClosest)
	}
}
