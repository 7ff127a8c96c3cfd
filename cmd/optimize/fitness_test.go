package main

import (
	"math"
	"testing"

	"github.com/lemilonkh/ecolia/config"
	"github.com/lemilonkh/ecolia/telemetry"
)

func TestParamVectorRoundtrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	raw := pv.DefaultVector()
	raw[0] = 1.7 // p_closest above range
	if err := pv.ApplyToConfig(cfg, raw); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	if cfg.Foraging.PClosest != 1 {
		t.Errorf("p_closest = %v, want clamped 1", cfg.Foraging.PClosest)
	}
	if cfg.Resource.RespawnInterval != 1.2 {
		t.Errorf("respawn_interval = %v, want default 1.2", cfg.Resource.RespawnInterval)
	}
}

func TestApplyToConfigRefreshesDerived(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	cfg.Creatures.ArrivalRadius = 2

	if err := pv.ApplyToConfig(cfg, pv.DefaultVector()); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	if got := cfg.Derived.ArrivalRadiusSq; got != 4 {
		t.Errorf("ArrivalRadiusSq = %v, want 4", got)
	}
}

func TestComputeQuality(t *testing.T) {
	steady := []telemetry.WindowStats{
		{Alive: 6, Plants: 40}, // warmup, ignored
		{Alive: 6, Plants: 20, EnergyP50: 0.6, Arrivals: 30},
		{Alive: 6, Plants: 20, EnergyP50: 0.6, Arrivals: 30},
	}
	q := computeQuality(steady)
	if q < 0.9 || q > 1 {
		t.Errorf("steady run quality = %v, want close to 1", q)
	}

	extinct := []telemetry.WindowStats{{Alive: 6}, {Alive: 0}, {Alive: 0}}
	if q := computeQuality(extinct); q != 0 {
		t.Errorf("extinct run quality = %v, want 0", q)
	}
}

func TestEvaluateShortRun(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 1200, []int64{1, 2}, config.Default())

	fitness := fe.Evaluate(pv.DefaultVector())
	// Nobody dies without health damage, so survival is the full 20 seconds
	if fitness > -20 {
		t.Errorf("fitness = %v, want at most -20", fitness)
	}
	if q := fe.LastQuality(); q < 0 || q > 1 {
		t.Errorf("quality = %v out of range", q)
	}
}
