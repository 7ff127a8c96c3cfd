package main

import (
	"github.com/lemilonkh/ecolia/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// The order must match ApplyToConfig and newEvalRecord.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "p_closest", Path: "foraging.p_closest", Min: 0, Max: 1, Default: 0.6},
			{Name: "base_velocity", Path: "creatures.base_velocity", Min: 5, Max: 40, Default: 20},
			{Name: "run_energy_drain", Path: "vitality.run_energy_drain", Min: 0.005, Max: 0.1, Default: 0.02},
			{Name: "eat_energy_gain", Path: "vitality.eat_energy_gain", Min: 0.05, Max: 0.5, Default: 0.2},
			{Name: "eat_wait", Path: "timers.eat_wait", Min: 1, Max: 10, Default: 5},
			{Name: "respawn_interval", Path: "resource.respawn_interval", Min: 0.3, Max: 5, Default: 1.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config and refreshes derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	v := pv.Clamp(values)

	cfg.Foraging.PClosest = v[0]
	cfg.Creatures.BaseVelocity = v[1]
	cfg.Vitality.RunEnergyDrain = v[2]
	cfg.Vitality.EatEnergyGain = v[3]
	cfg.Timers.EatWait = v[4]
	cfg.Resource.RespawnInterval = v[5]

	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.RefreshDerived()
	return nil
}

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval            int     `csv:"eval"`
	Fitness         float64 `csv:"fitness"`
	Quality         float64 `csv:"quality"`
	PClosest        float64 `csv:"p_closest"`
	BaseVelocity    float64 `csv:"base_velocity"`
	RunEnergyDrain  float64 `csv:"run_energy_drain"`
	EatEnergyGain   float64 `csv:"eat_energy_gain"`
	EatWait         float64 `csv:"eat_wait"`
	RespawnInterval float64 `csv:"respawn_interval"`
}

func newEvalRecord(eval int, fitness, quality float64, v []float64) evalRecord {
	return evalRecord{
		Eval:            eval,
		Fitness:         fitness,
		Quality:         quality,
		PClosest:        v[0],
		BaseVelocity:    v[1],
		RunEnergyDrain:  v[2],
		EatEnergyGain:   v[3],
		EatWait:         v[4],
		RespawnInterval: v[5],
	}
}
